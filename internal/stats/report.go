package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/speedtype/internal/model"
)

var reportHeaders = []string{"Metric", "Value"}

// RenderResult prints the summary of a completed test.
func RenderResult(w io.Writer, res model.Result) error {
	elapsed := res.Elapsed.Seconds()
	rows := [][]string{
		{"WPM", fmt.Sprintf("%.2f", res.WPM)},
		{"CPM", fmt.Sprintf("%.2f", CPM(res.Typed, elapsed))},
		{"Characters", fmt.Sprintf("%d", res.Typed)},
		{"Correct", fmt.Sprintf("%d (%.1f%%)", res.Correct, Accuracy(res.Correct, res.Typed)*100)},
		{"Elapsed", res.Elapsed.Round(10 * time.Millisecond).String()},
		{"Time limit", fmt.Sprintf("%ds", res.Duration)},
		{"Samples", fmt.Sprintf("%d", len(res.Samples))},
	}
	if len(res.Samples) > 0 {
		rows = append(rows, []string{"Trend", Sparkline(SampleWPMs(res.Samples))})
	}
	if _, err := fmt.Fprintln(w, "Result"); err != nil {
		return err
	}
	for _, line := range formatTable(reportHeaders, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
