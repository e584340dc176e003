package tooltip

import (
	"github.com/vango-dev/tooltip/pkg/popover"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// Mode is how a session was started.
type Mode uint8

const (
	ModeHover Mode = iota // pointer entered the anchor
	ModeHold              // touch press, shown while held
	ModeTap               // touch tap, toggled by the next tap
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeHover:
		return "hover"
	case ModeHold:
		return "hold"
	case ModeTap:
		return "tap"
	default:
		return "unknown"
	}
}

func (m Mode) touch() bool { return m == ModeHold || m == ModeTap }

// session is the bookkeeping for one interaction: its pending timer and,
// once shown, its popover handle.
type session struct {
	token  uint64
	anchor *vdom.VNode
	decl   Declaration
	mode   Mode

	timer    Timer
	handle   popover.Handle
	closing  bool   // release timer pending (hold mode)
	closeSeq uint64 // bumped per release; close timers capture it
}

func (s *session) shown() bool { return s.handle != 0 }

// cancelTimer stops the pending timer. Safe to call repeatedly.
func (s *session) cancelTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.closing = false
}

// slot owns the single active session.
//
// Every session gets a fresh token. Timer callbacks capture the token and
// compare it with the active session's when they run, so a callback that
// fires after its session was cancelled or replaced does nothing even if
// Timer.Stop lost the race.
//
// outgoing holds a popover that is still visible while its replacement
// waits for its delay; it is closed when the replacement is shown or the
// pointer leaves its anchor.
type slot struct {
	token    uint64
	active   *session
	outgoing *session
}

func (s *slot) begin(anchor *vdom.VNode, decl Declaration, mode Mode) *session {
	s.token++
	sess := &session{token: s.token, anchor: anchor, decl: decl, mode: mode}
	s.active = sess
	return sess
}

// current returns the active session if it still carries token.
func (s *slot) current(token uint64) *session {
	if s.active != nil && s.active.token == token {
		return s.active
	}
	return nil
}

// release forgets sess wherever it is held.
func (s *slot) release(sess *session) {
	if s.active == sess {
		s.active = nil
	}
	if s.outgoing == sess {
		s.outgoing = nil
	}
}
