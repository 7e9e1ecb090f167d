// Package stats contains speed calculations and result rendering.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/speedtype/internal/model"
)

const (
	sparkChars = " .:-=+*#%@"
	// charsPerWord is the standard word length used for WPM.
	charsPerWord = 5.0
	// minElapsedSeconds caps speed for very short elapsed times.
	minElapsedSeconds = 1.0
)

// WPM returns words per minute for chars typed over elapsedSeconds.
func WPM(chars int, elapsedSeconds float64) float64 {
	if chars <= 0 {
		return 0
	}
	elapsed := math.Max(elapsedSeconds, minElapsedSeconds)
	return float64(chars) * 60 / (charsPerWord * elapsed)
}

// CPM returns characters per minute for chars typed over elapsedSeconds.
func CPM(chars int, elapsedSeconds float64) float64 {
	if chars <= 0 {
		return 0
	}
	elapsed := math.Max(elapsedSeconds, minElapsedSeconds)
	return float64(chars) * 60 / elapsed
}

// Accuracy returns the share of correct characters in [0, 1].
func Accuracy(correct, typed int) float64 {
	if typed <= 0 {
		return 0
	}
	return float64(correct) / float64(typed)
}

// SampleWPMs extracts the WPM column of samples.
func SampleWPMs(samples []model.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.WPM
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
