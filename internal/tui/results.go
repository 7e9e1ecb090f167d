package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/speedtype/internal/model"
	"github.com/verte-zerg/speedtype/internal/stats"
)

const (
	chartTitle      = "WPM over time"
	maxChartHeight  = 10
	minChartHeight  = 3
	resultsChrome   = 9
	fallbackWidth   = 80
	chartWidthShare = 0.8
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

func (m *Model) resultsView() string {
	res, ok := m.session.Result()
	if !ok {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = fallbackWidth
	}
	chartHeight := maxChartHeight
	if m.height > 0 {
		chartHeight = max(minChartHeight, min(maxChartHeight, m.height-resultsChrome))
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		renderResultCards(res),
		"",
		renderChart(res.Samples, stats.PlotWidthFor(int(float64(width)*chartWidthShare)), chartHeight),
		"",
		m.help.View(m.resultsKeys),
	)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func renderResultCards(res model.Result) string {
	elapsed := res.Elapsed.Seconds()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Final WPM", fmt.Sprintf("%.2f", res.WPM)),
		metricCard("CPM", fmt.Sprintf("%.1f", stats.CPM(res.Typed, elapsed))),
		metricCard("Correct", fmt.Sprintf("%d/%d", res.Correct, res.Typed)),
		metricCard("Time", fmt.Sprintf("%.1fs", elapsed)),
	)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderChart(samples []model.Sample, width, height int) string {
	var buf bytes.Buffer
	err := stats.RenderChart(&buf, stats.Chart{
		Title:      chartTitle,
		Samples:    samples,
		Width:      width,
		Height:     height,
		ForceColor: true,
	})
	if err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}
