package player

import (
	"os/exec"
	"sync"
	"sync/atomic"
)

var sessionSeq atomic.Uint64

// Session is one running playback. Stop may be called from any goroutine
// while another goroutine blocks in Wait.
type Session struct {
	id   uint64
	cmd  *exec.Cmd // nil for detached sessions
	done chan struct{}

	stopOnce sync.Once
	stopped  atomic.Bool
	waitErr  error
}

func newSession(cmd *exec.Cmd) *Session {
	return &Session{
		id:   sessionSeq.Add(1),
		cmd:  cmd,
		done: make(chan struct{}),
	}
}

// newDetached returns a session for a player we cannot track. It ends only
// when stopped.
func newDetached() *Session {
	return newSession(nil)
}

// startAttached starts cmd and reaps it in the background
func startAttached(cmd *exec.Cmd) (*Session, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	s := newSession(cmd)
	go func() {
		s.waitErr = cmd.Wait()
		close(s.done)
	}()
	return s, nil
}

// ID returns the unique session identifier
func (s *Session) ID() uint64 {
	return s.id
}

// Detached reports whether the player process is not tracked
func (s *Session) Detached() bool {
	return s.cmd == nil
}

// Stop ends playback. It is safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		if s.cmd == nil {
			close(s.done)
			return
		}
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
	})
}

// Stopped reports whether Stop was called
func (s *Session) Stopped() bool {
	return s.stopped.Load()
}

// Wait blocks until playback ends. It returns nil when the player exited
// cleanly or the session was stopped, and the process error otherwise.
func (s *Session) Wait() error {
	<-s.done
	if s.stopped.Load() {
		return nil
	}
	return s.waitErr
}
