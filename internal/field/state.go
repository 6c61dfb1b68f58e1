package field

// State is the run state of the frame loop.
type State uint8

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}
