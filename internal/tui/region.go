package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/videoclub/internal/gallery"
	"github.com/mmcdole/videoclub/internal/player"
)

// Session is a running external playback
type Session interface {
	ID() uint64
	Stop()
	Wait() error
}

// Launcher starts a stream URL in an external player
type Launcher interface {
	Start(url string) (Session, error)
}

// LauncherFunc adapts a function to Launcher
type LauncherFunc func(url string) (Session, error)

// Start implements Launcher
func (f LauncherFunc) Start(url string) (Session, error) {
	return f(url)
}

// PlayerLauncher adapts a player.Launcher to the TUI
func PlayerLauncher(l *player.Launcher) Launcher {
	return LauncherFunc(func(url string) (Session, error) {
		s, err := l.Start(url)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

var errNoLauncher = errors.New("no player available")

// screenRegion is the gallery container drawn by the TUI. Surfaces only
// flip flags here; the view reads them on the next frame.
type screenRegion struct {
	message    *gallery.Message
	cards      []*card
	streamBase string
	launcher   Launcher

	// commands queued by surfaces during the current Update
	pending []tea.Cmd
}

func newScreenRegion(streamBase string, launcher Launcher) *screenRegion {
	return &screenRegion{streamBase: streamBase, launcher: launcher}
}

// Reset implements gallery.Region
func (r *screenRegion) Reset() {
	r.stopAll()
	r.message = nil
	r.cards = nil
}

// SetMessage implements gallery.Region
func (r *screenRegion) SetMessage(msg gallery.Message) {
	r.stopAll()
	r.cards = nil
	r.message = &msg
}

// Append implements gallery.Region
func (r *screenRegion) Append(f gallery.Fragment) gallery.Mount {
	c := &card{
		fragment:  f,
		streamURL: r.streamBase + f.StreamPath,
	}
	c.player = &playerSurface{card: c, region: r}
	r.cards = append(r.cards, c)

	return gallery.Mount{
		Poster:      posterSurface{card: c},
		Player:      c.player,
		Diagnostics: c,
	}
}

// card returns the card at index, or nil
func (r *screenRegion) card(index int) *card {
	if index < 0 || index >= len(r.cards) {
		return nil
	}
	return r.cards[index]
}

func (r *screenRegion) queue(cmd tea.Cmd) {
	r.pending = append(r.pending, cmd)
}

// drain returns and clears the queued commands
func (r *screenRegion) drain() []tea.Cmd {
	cmds := r.pending
	r.pending = nil
	return cmds
}

// stopAll ends every running session
func (r *screenRegion) stopAll() {
	for _, c := range r.cards {
		c.player.stop()
	}
}

// card is one rendered catalog entry
type card struct {
	fragment      gallery.Fragment
	streamURL     string
	posterVisible bool
	playerVisible bool
	diagnostics   []string
	player        *playerSurface
}

// AppendDiagnostic implements gallery.DiagnosticSink
func (c *card) AppendDiagnostic(text string) {
	c.diagnostics = append(c.diagnostics, text)
}

// posterSurface toggles the poster block of a card
type posterSurface struct {
	card *card
}

func (p posterSurface) Show() { p.card.posterVisible = true }
func (p posterSurface) Hide() { p.card.posterVisible = false }

// playerSurface toggles the player panel and drives the external player.
// gen increases on every Play and Pause so late launcher results can be
// told apart from the current one.
type playerSurface struct {
	card    *card
	region  *screenRegion
	gen     int
	active  bool
	session Session
}

func (p *playerSurface) Show() { p.card.playerVisible = true }
func (p *playerSurface) Hide() { p.card.playerVisible = false }

// Play requests a player launch; the result arrives as a message
func (p *playerSurface) Play() {
	p.gen++
	p.active = true
	index, gen := p.card.fragment.Index, p.gen

	if p.region.launcher == nil {
		p.region.queue(func() tea.Msg {
			return PlaybackFailedMsg{Index: index, Gen: gen, Err: errNoLauncher}
		})
		return
	}
	p.region.queue(StartPlayerCmd(p.region.launcher, index, gen, p.card.streamURL))
}

// Pause stops the external player
func (p *playerSurface) Pause() {
	p.stop()
}

func (p *playerSurface) stop() {
	p.gen++
	p.active = false
	if p.session != nil {
		p.session.Stop()
		p.session = nil
	}
}

// current reports whether gen belongs to the playback in progress
func (p *playerSurface) current(gen int) bool {
	return p.active && gen == p.gen
}

// attach binds a launched session. Sessions from superseded Play calls are
// stopped and false is returned.
func (p *playerSurface) attach(gen int, s Session) bool {
	if !p.current(gen) {
		s.Stop()
		return false
	}
	p.session = s
	return true
}

// detach forgets the session after its player ended
func (p *playerSurface) detach() {
	p.session = nil
}
