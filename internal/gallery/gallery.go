package gallery

// Gallery holds the controllers of one rendered catalog, in catalog order
type Gallery struct {
	controllers []*Controller
}

// Len returns the number of rendered entries
func (g *Gallery) Len() int {
	if g == nil {
		return 0
	}
	return len(g.controllers)
}

// Controller returns the controller at index, or nil when out of range
func (g *Gallery) Controller(index int) *Controller {
	if g == nil || index < 0 || index >= len(g.controllers) {
		return nil
	}
	return g.controllers[index]
}

// Activate delivers an activate trigger to the entry at index
func (g *Gallery) Activate(index int) {
	if c := g.Controller(index); c != nil {
		c.Activate()
	}
}

// Deactivate delivers a deactivate trigger to the entry at index
func (g *Gallery) Deactivate(index int) {
	if c := g.Controller(index); c != nil {
		c.Deactivate()
	}
}

// Fault delivers a playback fault to the entry at index
func (g *Gallery) Fault(index int, err error) {
	if c := g.Controller(index); c != nil {
		c.Fault(err)
	}
}

// States returns the display state of every entry
func (g *Gallery) States() []DisplayState {
	if g == nil {
		return nil
	}
	states := make([]DisplayState, len(g.controllers))
	for i, c := range g.controllers {
		states[i] = c.State()
	}
	return states
}

// Playing returns the index of the first entry in StatePlaying, or -1
func (g *Gallery) Playing() int {
	if g == nil {
		return -1
	}
	for i, c := range g.controllers {
		if c.State() == StatePlaying {
			return i
		}
	}
	return -1
}
