package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/speedtype/internal/model"
)

func TestRenderResult(t *testing.T) {
	start := time.Unix(0, 0)
	res := model.Result{
		StartedAt: start,
		EndedAt:   start.Add(15 * time.Second),
		Duration:  15,
		Elapsed:   15 * time.Second,
		Typed:     75,
		Correct:   72,
		WPM:       60,
		Samples: []model.Sample{
			{Elapsed: 0.5, WPM: 40},
			{Elapsed: 1, WPM: 55},
		},
	}
	var buf bytes.Buffer
	if err := RenderResult(&buf, res); err != nil {
		t.Fatalf("RenderResult failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Result", "WPM", "60.00", "CPM", "300.00", "75", "72 (96.0%)", "15s", "Trend"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderResultAlignsValues(t *testing.T) {
	res := model.Result{
		Duration: 15,
		Elapsed:  15 * time.Second,
		Typed:    75,
		Correct:  72,
		WPM:      60,
	}
	var buf bytes.Buffer
	if err := RenderResult(&buf, res); err != nil {
		t.Fatalf("RenderResult failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"Result",
		"Metric          Value",
		"WPM             60.00",
		"CPM            300.00",
		"Characters         75",
		"Correct    72 (96.0%)",
		"Elapsed           15s",
		"Time limit        15s",
		"Samples             0",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestRenderResultWithoutSamples(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderResult(&buf, model.Result{Duration: 15}); err != nil {
		t.Fatalf("RenderResult failed: %v", err)
	}
	if strings.Contains(buf.String(), "Trend") {
		t.Fatalf("did not expect trend line without samples")
	}
}
