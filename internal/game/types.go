package game

// State is the phase of a session.
type State int

const (
	// StateDrawing accepts centerline points from the mouse.
	StateDrawing State = iota
	// StateRacing ticks the fleet on the finalized track.
	StateRacing
)

func (s State) String() string {
	switch s {
	case StateDrawing:
		return "drawing"
	case StateRacing:
		return "racing"
	default:
		return "unknown"
	}
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}
