// Package session implements the typing test state machine and speed sampling.
//
// A Session never reads the clock itself: every time-dependent operation takes the
// current instant as an argument.
package session

import (
	"time"

	"github.com/verte-zerg/speedtype/internal/model"
	"github.com/verte-zerg/speedtype/internal/stats"
)

const (
	// DefaultDuration is the test length in seconds when none is configured.
	DefaultDuration = 15
	// SampleInterval is the minimum spacing between two speed samples.
	SampleInterval = 500 * time.Millisecond
)

// Session tracks one typing test from construction to Finished or Cancelled.
type Session struct {
	target   []rune
	typed    []rune
	duration int
	phase    Phase

	samples      []model.Sample
	lastSampleAt time.Time
}

// New creates a session for text lasting duration seconds. Non-positive durations
// fall back to DefaultDuration. now seeds the sampling throttle.
func New(text string, duration int, now time.Time) *Session {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Session{
		target:       []rune(text),
		typed:        make([]rune, 0, len(text)),
		duration:     duration,
		phase:        NotStarted{},
		lastSampleAt: now,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Status returns the coarse state of the session.
func (s *Session) Status() Status {
	return statusOf(s.phase)
}

// Duration returns the configured test length in seconds.
func (s *Session) Duration() int {
	return s.duration
}

// SubmitChar records a typed character. The first call starts the timer. Input
// beyond the length of the target is dropped.
func (s *Session) SubmitChar(r rune, now time.Time) {
	switch s.phase.(type) {
	case NotStarted:
		s.phase = Typing{StartedAt: now}
	case Typing:
	default:
		return
	}
	if len(s.typed) < len(s.target) {
		s.typed = append(s.typed, r)
	}
}

// DeleteLast removes the most recently typed character, if any.
func (s *Session) DeleteLast() {
	switch s.phase.(type) {
	case NotStarted, Typing:
	default:
		return
	}
	if len(s.typed) == 0 {
		return
	}
	s.typed = s.typed[:len(s.typed)-1]
}

// Cancel aborts a running session. A finished session stays finished.
func (s *Session) Cancel() {
	if _, ok := s.phase.(Finished); ok {
		return
	}
	s.phase = Cancelled{}
}

// Tick samples speed when due and then checks for completion. It reports whether
// the session moved to Finished during this call.
func (s *Session) Tick(now time.Time) bool {
	p, ok := s.phase.(Typing)
	if !ok {
		return false
	}
	if now.Sub(s.lastSampleAt) >= SampleInterval {
		s.samples = append(s.samples, model.Sample{Elapsed: s.Elapsed(now), WPM: s.WPM(now)})
		s.lastSampleAt = now
	}
	if !s.completionDue(now) {
		return false
	}
	end := now
	if end.Before(p.StartedAt) {
		end = p.StartedAt
	}
	s.phase = Finished{StartedAt: p.StartedAt, EndedAt: end}
	s.appendFinalSample(end)
	return true
}

// appendFinalSample records the speed at end unless the last sample already sits there.
func (s *Session) appendFinalSample(end time.Time) {
	final := model.Sample{Elapsed: s.Elapsed(end), WPM: s.WPM(end)}
	if n := len(s.samples); n > 0 && s.samples[n-1].Elapsed >= final.Elapsed {
		return
	}
	s.samples = append(s.samples, final)
}

// Elapsed returns the seconds since the first keystroke, frozen once finished.
func (s *Session) Elapsed(now time.Time) float64 {
	start, ok := s.startedAt()
	if !ok {
		return 0
	}
	end := now
	if f, ok := s.phase.(Finished); ok {
		end = f.EndedAt
	}
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return d.Seconds()
}

// TimeLeft returns the whole seconds remaining, saturating at zero.
func (s *Session) TimeLeft(now time.Time) int {
	start, ok := s.startedAt()
	if !ok {
		return s.duration
	}
	ref := now
	if f, ok := s.phase.(Finished); ok {
		ref = f.EndedAt
	}
	secs := int(ref.Sub(start) / time.Second)
	if secs < 0 {
		secs = 0
	}
	left := s.duration - secs
	if left < 0 {
		return 0
	}
	return left
}

// WPM returns the words-per-minute speed at now.
func (s *Session) WPM(now time.Time) float64 {
	return stats.WPM(len(s.typed), s.Elapsed(now))
}

// IsFinished reports whether the session is, or is due to be, finished at now.
func (s *Session) IsFinished(now time.Time) bool {
	if _, ok := s.phase.(Finished); ok {
		return true
	}
	return s.completionDue(now)
}

func (s *Session) completionDue(now time.Time) bool {
	if _, ok := s.startedAt(); !ok {
		return false
	}
	return s.TimeLeft(now) == 0 || len(s.typed) == len(s.target)
}

func (s *Session) startedAt() (time.Time, bool) {
	switch p := s.phase.(type) {
	case Typing:
		return p.StartedAt, true
	case Finished:
		return p.StartedAt, true
	default:
		return time.Time{}, false
	}
}

// Samples returns a copy of the speed history. Entries are at least SampleInterval
// apart, except the final sample of a finished session, which sits at the end time.
func (s *Session) Samples() []model.Sample {
	out := make([]model.Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Result returns the final report. ok is false unless the session finished.
func (s *Session) Result() (model.Result, bool) {
	f, ok := s.phase.(Finished)
	if !ok {
		return model.Result{}, false
	}
	return model.Result{
		StartedAt: f.StartedAt,
		EndedAt:   f.EndedAt,
		Duration:  s.duration,
		Elapsed:   f.EndedAt.Sub(f.StartedAt),
		Typed:     len(s.typed),
		Correct:   s.correctCount(),
		WPM:       s.WPM(f.EndedAt),
		Samples:   s.Samples(),
	}, true
}

func (s *Session) correctCount() int {
	n := 0
	for i, r := range s.typed {
		if r == s.target[i] {
			n++
		}
	}
	return n
}
