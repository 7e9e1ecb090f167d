package session

import (
	"time"

	"github.com/verte-zerg/speedtype/internal/model"
)

// Snapshot is a read-only view of a session for rendering. It shares no memory
// with the session.
type Snapshot struct {
	Status   Status
	Target   []rune
	Typed    []rune
	TimeLeft int
	Elapsed  float64
	WPM      float64
	Samples  []model.Sample
}

// Snapshot captures the session state at now.
func (s *Session) Snapshot(now time.Time) Snapshot {
	target := make([]rune, len(s.target))
	copy(target, s.target)
	typed := make([]rune, len(s.typed))
	copy(typed, s.typed)
	return Snapshot{
		Status:   s.Status(),
		Target:   target,
		Typed:    typed,
		TimeLeft: s.TimeLeft(now),
		Elapsed:  s.Elapsed(now),
		WPM:      s.WPM(now),
		Samples:  s.Samples(),
	}
}

// Progress returns the typed share of the target in percent.
func (sn Snapshot) Progress() int {
	if len(sn.Target) == 0 {
		return 0
	}
	return int(float64(len(sn.Typed)) / float64(len(sn.Target)) * 100)
}

// Caret returns the index of the next character to type, or -1 when the text is complete.
func (sn Snapshot) Caret() int {
	if len(sn.Typed) < len(sn.Target) {
		return len(sn.Typed)
	}
	return -1
}
