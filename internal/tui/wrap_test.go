package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/speedtype/internal/session"
)

func snapshotOf(target, typed string) session.Snapshot {
	return session.Snapshot{Target: []rune(target), Typed: []rune(typed)}
}

func TestBuildStyledRunesCaret(t *testing.T) {
	runes := buildStyledRunes(snapshotOf("ab", "a"))
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].class != classCorrect || runes[0].caret {
		t.Fatalf("expected correct, caret-free first rune: %+v", runes[0])
	}
	if !runes[1].caret {
		t.Fatalf("expected caret on second rune")
	}
	if runes[1].render() != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined current-word style for caret rune")
	}
}

func TestBuildStyledRunesNoCaretWhenComplete(t *testing.T) {
	runes := buildStyledRunes(snapshotOf("a", "a"))
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].caret || runes[0].class != classCorrect {
		t.Fatalf("expected plain correct rune, got %+v", runes[0])
	}
	if runes[0].render() != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	runes := buildStyledRunes(snapshotOf("ab", "ax"))
	if runes[1].class != classIncorrect {
		t.Fatalf("expected incorrect class, got %v", runes[1].class)
	}
	if runes[1].r != 'b' || runes[1].render() != incorrectStyle.Render("b") {
		t.Fatalf("expected target rune rendered in incorrect style")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes(snapshotOf("one two", "o"))
	want := []charClass{
		classCorrect, classCurrentWord, classCurrentWord,
		classPending,
		classPending, classPending, classPending,
	}
	for i, c := range want {
		if runes[i].class != c {
			t.Fatalf("rune %d: expected class %v, got %v", i, c, runes[i].class)
		}
	}
}

func TestBuildStyledRunesNextWordAfterSpace(t *testing.T) {
	runes := buildStyledRunes(snapshotOf("one two", "one "))
	if runes[4].class != classCurrentWord || runes[6].class != classCurrentWord {
		t.Fatalf("expected second word highlighted once the space is typed")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	runes := buildStyledRunes(snapshotOf("a b", "ax"))
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].r != wrongSpaceGlyph || runes[1].render() != incorrectStyle.Render(string(wrongSpaceGlyph)) {
		t.Fatalf("expected dot for wrong space")
	}
	if !runes[1].isSpace {
		t.Fatalf("expected wrong space to stay a wrap point")
	}
}

func TestStyledRuneRenderFollowsClass(t *testing.T) {
	cases := []struct {
		class charClass
		style lipgloss.Style
	}{
		{classPending, pendingStyle},
		{classCurrentWord, currentWordStyle},
		{classCorrect, correctStyle},
		{classIncorrect, incorrectStyle},
	}
	for _, tc := range cases {
		sr := styledRune{r: 'x', width: 1, class: tc.class}
		if got, want := sr.render(), tc.style.Render("x"); got != want {
			t.Fatalf("class %v: expected %q, got %q", tc.class, want, got)
		}
		sr.caret = true
		if got, want := sr.render(), tc.style.Underline(true).Render("x"); got != want {
			t.Fatalf("class %v with caret: expected %q, got %q", tc.class, want, got)
		}
	}
}

func TestRenderStyledRunesUsesClasses(t *testing.T) {
	runes := buildStyledRunes(snapshotOf("ab", "x"))
	want := incorrectStyle.Render("a") + currentWordStyle.Underline(true).Render("b")
	if got := renderStyledRunes(runes); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	runes := buildStyledRunes(snapshotOf("lorem ipsum dolor", ""))
	out := wrapStyledRunes(runes, 11)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "m") || !strings.Contains(lines[1], "d") {
		t.Fatalf("unexpected wrap: %q", out)
	}
}

func TestWordForCursor(t *testing.T) {
	words := findWords([]rune("ab cd"))
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if w := wordForCursor(words, 1); w == nil || w.start != 0 {
		t.Fatalf("expected first word for caret 1, got %+v", w)
	}
	if w := wordForCursor(words, 2); w == nil || w.start != 3 {
		t.Fatalf("expected second word for caret on space, got %+v", w)
	}
	if w := wordForCursor(words, -1); w != nil {
		t.Fatalf("expected no word when complete, got %+v", w)
	}
}
