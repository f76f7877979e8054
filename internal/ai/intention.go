package ai

// Intention is what a mover is currently trying to do.
type Intention uint8

const (
	IntentionIdle    Intention = iota // stopped or no path
	IntentionChase                    // following the steering vector
	IntentionArrived                  // within reach of the target
)

func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionChase:
		return "CHASE"
	case IntentionArrived:
		return "ARRIVED"
	default:
		return "UNKNOWN"
	}
}
