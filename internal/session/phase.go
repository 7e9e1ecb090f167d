package session

import "time"

// Phase is the lifecycle position of a session. The concrete types carry exactly
// the timestamps that are valid in that position.
type Phase interface {
	isPhase()
}

// NotStarted is the initial phase: nothing has been typed yet.
type NotStarted struct{}

// Typing is entered on the first accepted character.
type Typing struct {
	StartedAt time.Time
}

// Finished is terminal: the timer ran out or the text was completed.
type Finished struct {
	StartedAt time.Time
	EndedAt   time.Time
}

// Cancelled is terminal: the participant aborted the test.
type Cancelled struct{}

func (NotStarted) isPhase() {}
func (Typing) isPhase()     {}
func (Finished) isPhase()   {}
func (Cancelled) isPhase()  {}

// Status is the coarse state exposed to renderers.
type Status int

const (
	// StatusTyping covers both the not-yet-started and the running phase.
	StatusTyping Status = iota
	StatusFinished
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusTyping:
		return "typing"
	case StatusFinished:
		return "finished"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func statusOf(p Phase) Status {
	switch p.(type) {
	case Finished:
		return StatusFinished
	case Cancelled:
		return StatusCancelled
	default:
		return StatusTyping
	}
}
