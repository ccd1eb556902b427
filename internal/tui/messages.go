package tui

import (
	"github.com/mmcdole/videoclub/internal/domain"
)

// Message types for the TUI

// CatalogLoadedMsg carries the outcome of the startup catalog load
type CatalogLoadedMsg struct {
	Result domain.CatalogResult
}

// PlaybackStartedMsg signals that a player was launched for an entry.
// Gen identifies the Play call that requested it.
type PlaybackStartedMsg struct {
	Index   int
	Gen     int
	Session Session
}

// PlaybackFailedMsg signals that a player could not be launched
type PlaybackFailedMsg struct {
	Index int
	Gen   int
	Err   error
}

// PlaybackExitedMsg signals that a launched player ended on its own
type PlaybackExitedMsg struct {
	Index int
	Gen   int
	Err   error
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
