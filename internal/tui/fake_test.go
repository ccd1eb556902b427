package tui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/videoclub/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSession is a player session controlled by the test
type fakeSession struct {
	id      uint64
	stopped bool
	exit    chan error
}

func (s *fakeSession) ID() uint64  { return s.id }
func (s *fakeSession) Stop()       { s.stopped = true }
func (s *fakeSession) Wait() error { return <-s.exit }

// fakeLauncher records every launch
type fakeLauncher struct {
	urls     []string
	sessions []*fakeSession
	err      error
}

func (l *fakeLauncher) Start(url string) (Session, error) {
	l.urls = append(l.urls, url)
	if l.err != nil {
		return nil, l.err
	}
	s := &fakeSession{id: uint64(len(l.sessions) + 1), exit: make(chan error, 1)}
	l.sessions = append(l.sessions, s)
	return s, nil
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, keyMsg(k))
}

// collect runs cmd and every command batched inside it
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// feed runs cmd and delivers the resulting messages to m
func feed(t *testing.T, m Model, cmd tea.Cmd) (Model, []tea.Cmd) {
	t.Helper()
	var next []tea.Cmd
	for _, msg := range collect(cmd) {
		var c tea.Cmd
		m, c = update(t, m, msg)
		if c != nil {
			next = append(next, c)
		}
	}
	return m, next
}

func testEntries() []domain.MediaEntry {
	return []domain.MediaEntry{
		{Title: "A", Year: 2000, Duration: 90, Poster: "/p.jpg", VideoURL: "a.mp4"},
		{Title: "B", Year: 2001, Duration: 80, Poster: "/q.jpg", VideoURL: "b y c.mp4"},
	}
}

func newTestModel(t *testing.T, l Launcher, res domain.CatalogResult) Model {
	t.Helper()
	m := NewModel(nil, l, Options{StreamBase: "http://backend", Logger: quietLogger()})
	m.statusDelay = time.Millisecond
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	m, _ = update(t, m, CatalogLoadedMsg{Result: res})
	return m
}
