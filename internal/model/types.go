// Package model defines shared data structures.
package model

import "time"

// Config defines typing test settings.
type Config struct {
	Duration int
	Text     string
	LogFile  string
	LogLevel string
}

// Sample is a single speed observation taken while typing.
type Sample struct {
	Elapsed float64
	WPM     float64
}

// Result captures a completed typing test.
type Result struct {
	StartedAt time.Time
	EndedAt   time.Time
	Duration  int
	Elapsed   time.Duration
	Typed     int
	Correct   int
	WPM       float64
	Samples   []Sample
}
