package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/videoclub/internal/domain"
	"github.com/mmcdole/videoclub/internal/gallery"
	"github.com/mmcdole/videoclub/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateSplash ApplicationState = iota
	StateLoading
	StateGallery
)

// Layout constants
const (
	HeaderHeight   = 2 // title line + status line
	BackdropHeight = 2 // star band under the header
	FooterHeight   = 1 // help line
)

// Options configures the TUI
type Options struct {
	StreamBase string // backend base URL prepended to stream paths
	Splash     bool
	Backdrop   bool
	Logger     *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State  ApplicationState
	Ready  bool
	loaded bool

	// Collaborators
	catalog  catalogFetcher
	region   *screenRegion
	renderer *gallery.Renderer
	gallery  *gallery.Gallery
	backdrop *Backdrop
	sky      *Backdrop // splash star bands
	logger   *slog.Logger

	// UI Components
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model

	// Selection
	cursor int

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	statusDelay  time.Duration
	showBackdrop bool
}

// NewModel creates a new application model
func NewModel(catalog catalogFetcher, launcher Launcher, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	region := newScreenRegion(opts.StreamBase, launcher)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	state := StateLoading
	if opts.Splash {
		state = StateSplash
	}

	return Model{
		State:        state,
		catalog:      catalog,
		region:       region,
		renderer:     gallery.NewRenderer(region, logger),
		backdrop:     NewBackdrop(nil),
		sky:          NewBackdrop(nil),
		logger:       logger,
		viewport:     viewport.New(0, 0),
		spinner:      sp,
		help:         help.New(),
		statusDelay:  4 * time.Second,
		showBackdrop: opts.Backdrop,
	}
}

// Init starts the one catalog load; the splash screen stays up meanwhile
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		FetchCatalogCmd(m.catalog),
		m.spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CatalogLoadedMsg:
		m.loaded = true
		m.gallery = m.renderer.Render(msg.Result)
		m.cursor = 0
		if m.State == StateLoading {
			m.State = StateGallery
		}
		m.refreshContent()
		if msg.Result.Kind == domain.ResultFailed {
			m.StatusMsg = "Catalog unavailable"
			m.StatusIsErr = true
		}
		return m, nil

	case PlaybackStartedMsg:
		return m.handlePlaybackStarted(msg)

	case PlaybackFailedMsg:
		c := m.region.card(msg.Index)
		if c == nil || !c.player.current(msg.Gen) {
			return m, nil
		}
		m.logger.Error("failed to launch player", "index", msg.Index, "error", msg.Err)
		m.gallery.Fault(msg.Index, domain.PlaybackError(msg.Err))
		m.refreshContent()
		return m, m.setStatus("Could not start player: "+msg.Err.Error(), true)

	case PlaybackExitedMsg:
		return m.handlePlaybackExited(msg)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handlePlaybackStarted binds the session to its card and waits for it
func (m Model) handlePlaybackStarted(msg PlaybackStartedMsg) (tea.Model, tea.Cmd) {
	c := m.region.card(msg.Index)
	if c == nil {
		msg.Session.Stop()
		return m, nil
	}
	if !c.player.attach(msg.Gen, msg.Session) {
		m.logger.Debug("dropped stale player session", "index", msg.Index, "gen", msg.Gen)
		return m, nil
	}
	m.logger.Info("playback started", "index", msg.Index, "title", c.fragment.Heading)
	return m, WaitPlayerCmd(msg.Index, msg.Gen, msg.Session)
}

// handlePlaybackExited maps a player exit onto the entry's triggers: an
// error is a playback fault, a clean exit means the player window was left.
func (m Model) handlePlaybackExited(msg PlaybackExitedMsg) (tea.Model, tea.Cmd) {
	c := m.region.card(msg.Index)
	if c == nil || !c.player.current(msg.Gen) {
		return m, nil
	}
	c.player.detach()

	var cmd tea.Cmd
	if msg.Err != nil {
		m.logger.Warn("player exited with error", "index", msg.Index, "error", msg.Err)
		m.gallery.Fault(msg.Index, domain.PlaybackError(msg.Err))
		cmd = m.setStatus("Playback failed: "+c.fragment.Heading, true)
	} else {
		m.gallery.Deactivate(msg.Index)
	}
	m.refreshContent()
	return m, tea.Batch(append(m.region.drain(), cmd)...)
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Quit) {
		m.region.stopAll()
		return m, tea.Quit
	}

	// Any key dismisses the splash screen
	if m.State == StateSplash {
		m.dismissSplash()
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.moveCursor(m.cursor - 1)

	case key.Matches(msg, Keys.Down):
		m.moveCursor(m.cursor + 1)

	case key.Matches(msg, Keys.PageUp):
		m.moveCursor(m.cursor - m.pageSize())

	case key.Matches(msg, Keys.PageDown):
		m.moveCursor(m.cursor + m.pageSize())

	case key.Matches(msg, Keys.Home):
		m.moveCursor(0)

	case key.Matches(msg, Keys.End):
		m.moveCursor(m.gallery.Len() - 1)

	case key.Matches(msg, Keys.Play):
		m.gallery.Activate(m.cursor)

	case key.Matches(msg, Keys.Stop):
		m.gallery.Deactivate(m.cursor)

	default:
		return m, nil
	}

	m.refreshContent()
	return m, tea.Batch(m.region.drain()...)
}

// handleMouseMsg handles wheel scrolling and splash dismissal
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	if m.State == StateSplash {
		if msg.Button == tea.MouseButtonLeft {
			m.dismissSplash()
		}
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(m.cursor - 1)
	case tea.MouseButtonWheelDown:
		m.moveCursor(m.cursor + 1)
	default:
		return m, nil
	}
	m.refreshContent()
	return m, tea.Batch(m.region.drain()...)
}

func (m *Model) dismissSplash() {
	if m.loaded {
		m.State = StateGallery
	} else {
		m.State = StateLoading
	}
}

// moveCursor selects another entry. Focus leaving a playing entry
// deactivates it.
func (m *Model) moveCursor(target int) {
	n := m.gallery.Len()
	if n == 0 {
		return
	}
	if target < 0 {
		target = 0
	}
	if target > n-1 {
		target = n - 1
	}
	if target == m.cursor {
		return
	}
	if c := m.gallery.Controller(m.cursor); c != nil && c.State() == gallery.StatePlaying {
		m.gallery.Deactivate(m.cursor)
	}
	m.cursor = target
}

func (m Model) pageSize() int {
	size := m.viewport.Height / cardHeight
	if size < 1 {
		return 1
	}
	return size
}

// setStatus shows a status message and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusDelay)
}

// updateLayout resizes components after a window or help change
func (m *Model) updateLayout() {
	m.help.Width = m.Width
	chrome := HeaderHeight + FooterHeight
	if m.help.ShowAll {
		chrome += len(Keys.FullHelp()[0]) - 1
	}
	if m.showBackdrop {
		chrome += BackdropHeight
		m.backdrop.Resize(m.Width, BackdropHeight)
		m.sky.Resize(m.Width, max((m.Height-splashHeight)/2, 0))
	}
	m.viewport.Width = m.Width
	m.viewport.Height = max(m.Height-chrome, 1)
	m.refreshContent()
}

// refreshContent redraws the gallery into the viewport and keeps the
// selected card on screen
func (m *Model) refreshContent() {
	content, top, bottom := renderRegion(m.region, m.cursor, m.Width)
	m.viewport.SetContent(content)

	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// Cursor returns the selected entry index
func (m Model) Cursor() int {
	return m.cursor
}

// Gallery returns the rendered gallery, nil before the catalog loaded
func (m Model) Gallery() *gallery.Gallery {
	return m.gallery
}
