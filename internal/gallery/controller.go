package gallery

import (
	"log/slog"
)

// PlaybackFaultText is the diagnostic appended to an entry on a playback fault
const PlaybackFaultText = "Error al cargar el video."

// PosterSurface is the static image representation of an entry
type PosterSurface interface {
	Show()
	Hide()
}

// PlayerSurface is the media-playback representation of an entry
type PlayerSurface interface {
	Show()
	Hide()
	Play()
	Pause()
}

// DiagnosticSink receives persistent messages shown next to an entry
type DiagnosticSink interface {
	AppendDiagnostic(text string)
}

// Mount is the set of surfaces a region hands back for one fragment
type Mount struct {
	Poster      PosterSurface
	Player      PlayerSurface
	Diagnostics DiagnosticSink
}

// Controller owns the display state of one entry and drives its surfaces.
// Triggers must be delivered from a single goroutine.
type Controller struct {
	index  int
	state  DisplayState
	mount  Mount
	logger *slog.Logger
}

// NewController wires a controller to its surfaces and puts them in the
// initial Poster state: poster shown, player hidden and not started.
func NewController(index int, mount Mount, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		index:  index,
		state:  StatePoster,
		mount:  mount,
		logger: logger,
	}
	mount.Player.Hide()
	mount.Poster.Show()
	return c
}

// Index returns the catalog position of the controlled entry
func (c *Controller) Index() int {
	return c.index
}

// State returns the current display state
func (c *Controller) State() DisplayState {
	return c.state
}

// Activate handles selection of the poster
func (c *Controller) Activate() {
	c.dispatch(TriggerActivate, nil)
}

// Deactivate handles focus leaving the player surface
func (c *Controller) Deactivate() {
	c.dispatch(TriggerDeactivate, nil)
}

// Fault handles a playback error reported by the media surface. The display
// state is left as it is.
func (c *Controller) Fault(err error) {
	c.dispatch(TriggerFault, err)
}

func (c *Controller) dispatch(trig Trigger, err error) {
	next, effects := Transition(c.state, trig)
	if len(effects) == 0 {
		c.logger.Debug("ignored trigger", "index", c.index, "trigger", trig, "state", c.state)
		return
	}

	if trig == TriggerFault {
		c.logger.Warn("playback fault", "index", c.index, "state", c.state, "error", err)
	} else {
		c.logger.Debug("transition", "index", c.index, "trigger", trig, "from", c.state, "to", next)
	}

	c.state = next
	for _, e := range effects {
		c.apply(e)
	}
}

func (c *Controller) apply(e Effect) {
	switch e {
	case EffectHidePoster:
		c.mount.Poster.Hide()
	case EffectShowPoster:
		c.mount.Poster.Show()
	case EffectShowPlayer:
		c.mount.Player.Show()
	case EffectHidePlayer:
		c.mount.Player.Hide()
	case EffectPlay:
		c.mount.Player.Play()
	case EffectPause:
		c.mount.Player.Pause()
	case EffectAppendDiagnostic:
		if c.mount.Diagnostics != nil {
			c.mount.Diagnostics.AppendDiagnostic(PlaybackFaultText)
		}
	}
}
