package session

import "time"

// EventKind identifies an input event fed to a session.
type EventKind int

const (
	// EventNone means the poll timed out without input.
	EventNone EventKind = iota
	EventChar
	EventBackspace
	EventCancel
)

// Event is one discrete input event.
type Event struct {
	Kind EventKind
	Char rune
}

// CharEvent builds an EventChar for r.
func CharEvent(r rune) Event {
	return Event{Kind: EventChar, Char: r}
}

// Outcome is the result of a driver iteration.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeFinished
	OutcomeCancelled
)

// Handle runs one driver iteration: it applies ev and then ticks at now.
func (s *Session) Handle(ev Event, now time.Time) Outcome {
	switch ev.Kind {
	case EventChar:
		s.SubmitChar(ev.Char, now)
	case EventBackspace:
		s.DeleteLast()
	case EventCancel:
		s.Cancel()
	}
	s.Tick(now)
	return s.outcome()
}

func (s *Session) outcome() Outcome {
	switch s.phase.(type) {
	case Finished:
		return OutcomeFinished
	case Cancelled:
		return OutcomeCancelled
	default:
		return OutcomeRunning
	}
}
