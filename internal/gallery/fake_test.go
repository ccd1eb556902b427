package gallery

import (
	"io"
	"log/slog"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEntry records every surface call of one fragment
type fakeEntry struct {
	fragment      Fragment
	posterVisible bool
	playerVisible bool
	playing       bool
	playCalls     int
	pauseCalls    int
	toggles       int
	diagnostics   []string
}

type fakePoster struct{ e *fakeEntry }

func (p fakePoster) Show() { p.e.posterVisible = true; p.e.toggles++ }
func (p fakePoster) Hide() { p.e.posterVisible = false; p.e.toggles++ }

type fakePlayer struct{ e *fakeEntry }

func (p fakePlayer) Show()  { p.e.playerVisible = true; p.e.toggles++ }
func (p fakePlayer) Hide()  { p.e.playerVisible = false; p.e.toggles++ }
func (p fakePlayer) Play()  { p.e.playing = true; p.e.playCalls++ }
func (p fakePlayer) Pause() { p.e.playing = false; p.e.pauseCalls++ }

func (e *fakeEntry) AppendDiagnostic(text string) {
	e.diagnostics = append(e.diagnostics, text)
}

func (e *fakeEntry) mount() Mount {
	return Mount{Poster: fakePoster{e}, Player: fakePlayer{e}, Diagnostics: e}
}

// exactlyOneVisible is the poster/player visibility invariant
func (e *fakeEntry) exactlyOneVisible() bool {
	return e.posterVisible != e.playerVisible
}

// fakeRegion is an in-memory Region
type fakeRegion struct {
	resets   int
	messages []Message
	entries  []*fakeEntry
}

func (r *fakeRegion) Reset() {
	r.resets++
	r.messages = nil
	r.entries = nil
}

func (r *fakeRegion) SetMessage(msg Message) {
	r.entries = nil
	r.messages = []Message{msg}
}

func (r *fakeRegion) Append(f Fragment) Mount {
	e := &fakeEntry{fragment: f}
	r.entries = append(r.entries, e)
	return e.mount()
}
