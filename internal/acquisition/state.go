package acquisition

// State is the connection/acquisition state of the instrument.
type State int

const (
	Disconnected State = iota
	Idle               // connected, not acquiring
	Acquiring
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Idle:
		return "idle"
	case Acquiring:
		return "acquiring"
	default:
		return "unknown"
	}
}

// Connected reports whether the device is connected in this state.
func (s State) Connected() bool { return s == Idle || s == Acquiring }

// Acquiring reports whether the periodic tick is running.
func (s State) Acquiring() bool { return s == Acquiring }
