package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/videoclub/internal/domain"
)

// Command factories for async operations

// catalogFetcher loads the catalog (consumer-defined interface)
type catalogFetcher interface {
	FetchCatalog(ctx context.Context) domain.CatalogResult
}

// FetchCatalogCmd performs the one catalog load. No timeout is applied here;
// the client carries the configured one.
func FetchCatalogCmd(c catalogFetcher) tea.Cmd {
	return func() tea.Msg {
		return CatalogLoadedMsg{Result: c.FetchCatalog(context.Background())}
	}
}

// StartPlayerCmd launches the external player for an entry
func StartPlayerCmd(l Launcher, index, gen int, url string) tea.Cmd {
	return func() tea.Msg {
		s, err := l.Start(url)
		if err != nil {
			return PlaybackFailedMsg{Index: index, Gen: gen, Err: err}
		}
		return PlaybackStartedMsg{Index: index, Gen: gen, Session: s}
	}
}

// WaitPlayerCmd blocks until the player session ends
func WaitPlayerCmd(index, gen int, s Session) tea.Cmd {
	return func() tea.Msg {
		return PlaybackExitedMsg{Index: index, Gen: gen, Err: s.Wait()}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
