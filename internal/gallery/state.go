package gallery

// DisplayState is the per-entry interactive state
type DisplayState int

const (
	StatePoster  DisplayState = iota // poster visible, player hidden and stopped
	StatePlaying                     // player visible and playing
)

// String returns the state name
func (s DisplayState) String() string {
	switch s {
	case StatePoster:
		return "poster"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Trigger is an event delivered to a controller
type Trigger int

const (
	TriggerActivate   Trigger = iota // user selected the poster
	TriggerDeactivate                // focus left the player surface
	TriggerFault                     // media surface reported a playback error
)

// String returns the trigger name
func (t Trigger) String() string {
	switch t {
	case TriggerActivate:
		return "activate"
	case TriggerDeactivate:
		return "deactivate"
	case TriggerFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Effect is a side effect to apply to the entry's surfaces after a transition
type Effect int

const (
	EffectHidePoster Effect = iota
	EffectShowPoster
	EffectShowPlayer
	EffectHidePlayer
	EffectPlay
	EffectPause
	EffectAppendDiagnostic
)

// String returns the effect name
func (e Effect) String() string {
	switch e {
	case EffectHidePoster:
		return "hide-poster"
	case EffectShowPoster:
		return "show-poster"
	case EffectShowPlayer:
		return "show-player"
	case EffectHidePlayer:
		return "hide-player"
	case EffectPlay:
		return "play"
	case EffectPause:
		return "pause"
	case EffectAppendDiagnostic:
		return "append-diagnostic"
	default:
		return "unknown"
	}
}

// Transition decides the next state and the ordered effects for a trigger.
// It has no side effects. Activate from Playing and Deactivate from Poster
// return the current state and no effects.
func Transition(state DisplayState, trig Trigger) (DisplayState, []Effect) {
	switch trig {
	case TriggerActivate:
		if state == StatePoster {
			return StatePlaying, []Effect{EffectHidePoster, EffectShowPlayer, EffectPlay}
		}
	case TriggerDeactivate:
		if state == StatePlaying {
			return StatePoster, []Effect{EffectPause, EffectHidePlayer, EffectShowPoster}
		}
	case TriggerFault:
		return state, []Effect{EffectAppendDiagnostic}
	}
	return state, nil
}
