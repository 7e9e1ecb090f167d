package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/speedtype/internal/session"
)

type charClass int

const (
	classPending charClass = iota
	classCurrentWord
	classCorrect
	classIncorrect
)

type styledRune struct {
	r       rune
	width   int
	isSpace bool
	class   charClass
	caret   bool
}

const wrongSpaceGlyph = '•'

// render draws the rune in its class style, underlined under the caret.
func (sr styledRune) render() string {
	style := styleFor(sr.class)
	if sr.caret {
		style = style.Underline(true)
	}
	return style.Render(string(sr.r))
}

// buildStyledRunes classifies every target position of a snapshot.
func buildStyledRunes(snap session.Snapshot) []styledRune {
	target, typed := snap.Target, snap.Typed
	caret := snap.Caret()
	currentWord := wordForCursor(findWords(target), caret)

	out := make([]styledRune, 0, len(target))
	for i, want := range target {
		displayed := want
		class := classPending
		switch {
		case i < len(typed) && want == ' ' && typed[i] != ' ':
			displayed = wrongSpaceGlyph
			class = classIncorrect
		case i < len(typed) && typed[i] == want:
			class = classCorrect
		case i < len(typed):
			class = classIncorrect
		case want != ' ' && currentWord != nil && i >= currentWord.start && i < currentWord.end:
			class = classCurrentWord
		}
		out = append(out, styledRune{
			r:       displayed,
			width:   runewidth.RuneWidth(displayed),
			isSpace: want == ' ',
			class:   class,
			caret:   i == caret,
		})
	}
	return out
}

func styleFor(class charClass) lipgloss.Style {
	switch class {
	case classCorrect:
		return correctStyle
	case classIncorrect:
		return incorrectStyle
	case classCurrentWord:
		return currentWordStyle
	default:
		return pendingStyle
	}
}

type wordRange struct {
	start int
	end   int
}

func findWords(target []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range target {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(target)})
	}
	return words
}

// wordForCursor returns the word containing the caret, or the next word when the
// caret sits on a space. A negative caret means the text is complete.
func wordForCursor(words []wordRange, caret int) *wordRange {
	if len(words) == 0 || caret < 0 {
		return nil
	}
	for i, w := range words {
		if caret < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.render())
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
