// ABOUTME: Playback session states and handles
// ABOUTME: State transitions happen under the owning controller's lock
package playback

import "github.com/CineVoice/cinevoice-go/pkg/audio/output"

// State is a playback session state
type State int

const (
	// StateIdle means no session is active on the controller
	StateIdle State = iota

	// StatePlaying means the session is rendering sound
	StatePlaying

	// StatePaused means the session is suspended but keeps its position
	StatePaused

	// StateStopped means the session was halted by an explicit stop
	StateStopped

	// StateEnded means the session played its clip to the end
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session is a handle to one playback of a clip. Sessions start in
// PLAYING and reach exactly one of the terminal states STOPPED or
// ENDED. A terminal session is never the controller's active session.
type Session struct {
	id       string
	ctrl     *Controller
	voice    output.Voice
	onFinish func()

	// state is guarded by ctrl.mu
	state State
}

// ID returns the session's unique identifier
func (s *Session) ID() string {
	return s.id
}

// State returns the session's current state
func (s *Session) State() State {
	s.ctrl.mu.Lock()
	defer s.ctrl.mu.Unlock()
	return s.state
}
