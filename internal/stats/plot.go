// Package stats contains speed calculations and result rendering.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/verte-zerg/speedtype/internal/model"
)

// Chart describes a WPM-over-time plot.
type Chart struct {
	Title   string
	Samples []model.Sample
	// Width is the number of plot columns; 0 fits the terminal.
	Width int
	// Height is the number of plot rows; 0 uses the default.
	Height int
	// ForceColor emits ANSI color even when w is not a terminal.
	ForceColor bool
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	yLabelWidth         = 5
	axisSeparator       = " │ "
	axisCorner          = " └─"
	yHeadroom           = 10.0
	seriesColor         = "\x1b[33m"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
	noSamplesNote       = "No samples recorded."
)

// RenderChart draws the chart as braille text.
func RenderChart(w io.Writer, c Chart) error {
	if c.Title != "" {
		if _, err := fmt.Fprintln(w, c.Title); err != nil {
			return err
		}
	}
	if len(c.Samples) == 0 {
		_, err := fmt.Fprintln(w, noSamplesNote)
		return err
	}

	height := c.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	width := c.Width
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)

	xMax, yMax := chartBounds(c.Samples)
	cells := makeCells(height, width)
	dotsX := width * 2
	dotsY := height * 4
	prevX, prevY := -1, -1
	for _, s := range c.Samples {
		px := scaleToDots(s.Elapsed/xMax, dotsX)
		py := dotsY - 1 - scaleToDots(s.WPM/yMax, dotsY)
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(x, y int) {
				setBrailleDot(cells, x, y)
			})
		} else {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}

	useColor := shouldUseColor(w, c.ForceColor)
	labels := makeAxisLabels(height, yMax)
	if _, err := fmt.Fprintf(w, "%*s\n", yLabelWidth, "WPM"); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", yLabelWidth, labels[y], axisSeparator)
		if useColor {
			row.WriteString(seriesColor)
		}
		for x := 0; x < width; x++ {
			row.WriteRune(brailleFromMask(cells[y][x]))
		}
		if useColor {
			row.WriteString(colorReset)
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%*s%s%s\n", yLabelWidth, "", axisCorner, strings.Repeat("─", width-1)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, xAxisLabels(xMax, width)); err != nil {
		return err
	}
	return nil
}

// chartBounds returns the x extent (last sample time) and y extent (peak WPM plus
// headroom). Both are strictly positive.
func chartBounds(samples []model.Sample) (float64, float64) {
	xMax := samples[len(samples)-1].Elapsed
	if xMax <= 0 {
		xMax = 1
	}
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, s.WPM)
	}
	return xMax, peak + yHeadroom
}

func scaleToDots(frac float64, dots int) int {
	pos := int(math.Round(frac * float64(dots-1)))
	return max(0, min(pos, dots-1))
}

func makeAxisLabels(height int, yMax float64) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = fmt.Sprintf("%.0f", yMax)
	if height > 2 {
		labels[height/2] = fmt.Sprintf("%.0f", yMax/2)
	}
	if height > 1 {
		labels[height-1] = "0"
	}
	return labels
}

func xAxisLabels(xMax float64, width int) string {
	left := "0"
	right := fmt.Sprintf("%.0fs", xMax)
	pad := utf8.RuneCountInString(axisSeparator)
	gap := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return strings.Repeat(" ", yLabelWidth+pad) + left + strings.Repeat(" ", gap) + right
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := yLabelWidth + utf8.RuneCountInString(axisSeparator)
	return max(totalWidth-axisWidth, minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

// brailleDotMask maps a dot inside a 2x4 braille cell to its bit.
func brailleDotMask(x, y int) uint8 {
	masks := [2][4]uint8{
		{0x01, 0x02, 0x04, 0x40},
		{0x08, 0x10, 0x20, 0x80},
	}
	if x < 0 || x > 1 || y < 0 || y > 3 {
		return 0
	}
	return masks[x][y]
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
