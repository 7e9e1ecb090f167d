// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/speedtype/internal/clock"
	"github.com/verte-zerg/speedtype/internal/logging"
	"github.com/verte-zerg/speedtype/internal/model"
	"github.com/verte-zerg/speedtype/internal/session"
)

// pollInterval bounds how long the loop waits for input before ticking anyway.
const pollInterval = 50 * time.Millisecond

type tickMsg time.Time

// Model implements the Bubble Tea typing UI. It drives a single session.
type Model struct {
	session *session.Session
	clock   clock.Clock
	logger  *slog.Logger

	typingKeys  typingKeyMap
	resultsKeys resultsKeyMap
	help        help.Model

	width  int
	height int

	outcome session.Outcome
	snap    session.Snapshot
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	timerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a typing TUI model for cfg. Time is read from clk.
func NewModel(cfg model.Config, clk clock.Clock, logger *slog.Logger) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	now := clk.Now()
	s := session.New(cfg.Text, cfg.Duration, now)
	return &Model{
		session:     s,
		clock:       clk,
		logger:      logger,
		typingKeys:  newTypingKeyMap(),
		resultsKeys: newResultsKeyMap(),
		help:        help.New(),
		outcome:     session.OutcomeRunning,
		snap:        s.Snapshot(now),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return poll()
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if m.outcome != session.OutcomeRunning {
			return m, nil
		}
		m.step(session.Event{})
		if m.outcome != session.OutcomeRunning {
			return m, nil
		}
		return m, poll()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.outcome {
	case session.OutcomeFinished:
		if key.Matches(msg, m.resultsKeys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case session.OutcomeCancelled:
		return m, tea.Quit
	}
	for _, ev := range m.translateKey(msg) {
		m.step(ev)
		if m.outcome != session.OutcomeRunning {
			break
		}
	}
	if m.outcome == session.OutcomeCancelled {
		return m, tea.Quit
	}
	return m, nil
}

// translateKey maps a key message to session events. Multi-rune messages, such as
// pastes, become one event per rune.
func (m *Model) translateKey(msg tea.KeyMsg) []session.Event {
	switch {
	case key.Matches(msg, m.typingKeys.Cancel):
		return []session.Event{{Kind: session.EventCancel}}
	case key.Matches(msg, m.typingKeys.Backspace):
		return []session.Event{{Kind: session.EventBackspace}}
	}
	switch msg.Type {
	case tea.KeySpace:
		return []session.Event{session.CharEvent(' ')}
	case tea.KeyRunes:
		events := make([]session.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, session.CharEvent(r))
		}
		return events
	default:
		return nil
	}
}

// step runs one loop iteration against the session and refreshes the snapshot.
func (m *Model) step(ev session.Event) {
	now := m.clock.Now()
	_, wasIdle := m.session.Phase().(session.NotStarted)
	outcome := m.session.Handle(ev, now)
	if _, idle := m.session.Phase().(session.NotStarted); wasIdle && !idle && outcome == session.OutcomeRunning {
		m.logger.Debug("session started", "duration", m.session.Duration())
	}
	if outcome != m.outcome {
		m.logTransition(outcome, now)
	}
	m.outcome = outcome
	m.snap = m.session.Snapshot(now)
}

func (m *Model) logTransition(outcome session.Outcome, now time.Time) {
	switch outcome {
	case session.OutcomeFinished:
		res, _ := m.session.Result()
		m.logger.Info("session finished",
			"wpm", res.WPM,
			"typed", res.Typed,
			"elapsed", res.Elapsed,
			"samples", len(res.Samples),
		)
	case session.OutcomeCancelled:
		m.logger.Info("session cancelled", "elapsed", m.session.Elapsed(now))
	}
}

// Outcome reports how the session ended, or OutcomeRunning.
func (m *Model) Outcome() session.Outcome {
	return m.outcome
}

// Result returns the final report of a completed session.
func (m *Model) Result() (model.Result, bool) {
	return m.session.Result()
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.snap.Status {
	case session.StatusFinished:
		return m.resultsView()
	case session.StatusCancelled:
		return ""
	default:
		return m.typingView()
	}
}

func (m *Model) typingView() string {
	if len(m.snap.Target) == 0 {
		return ""
	}
	styled := buildStyledRunes(m.snap)
	timer := timerStyle.Render(fmt.Sprintf("%ds", m.snap.TimeLeft))
	if m.width == 0 || m.height == 0 {
		return timer + "\n" + renderStyledRunes(styled)
	}
	contentWidth := max(1, int(float64(m.width)*0.70))
	wrapped := wrapStyledRunes(styled, contentWidth)
	text := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	content := lipgloss.JoinVertical(lipgloss.Center, timer, "", text)
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	return body + "\n" + footer
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("%.1f WPM", m.snap.WPM),
		fmt.Sprintf("Progress %d%%", m.snap.Progress()),
	}
	return footerStyle.Render(strings.Join(segments, "  ")) + "  " + m.help.View(m.typingKeys)
}
