package history

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/maths/internal/problemgen"
	"github.com/abhisek/maths/internal/router"
	"github.com/abhisek/maths/internal/screen"
	"github.com/abhisek/maths/internal/session"
	"github.com/abhisek/maths/internal/store"
	"github.com/abhisek/maths/internal/ui/layout"
	"github.com/abhisek/maths/internal/ui/theme"
)

// MaxSessions caps how many past rounds are listed.
const MaxSessions = 50

var errNoLog = errors.New("no session log available")

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

type missedLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerRecord
	Err       error
}

// HistoryScreen lists finished rounds. Enter toggles the questions missed
// in the selected round.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	missed    map[string][]store.AnswerRecord // sessionID → wrong answers
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. A nil repo shows an error.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		missed:    make(map[string][]store.AnswerRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{Err: errNoLog}
		}
		sessions, err := repo.QuerySessionSummaries(context.Background(), MaxSessions)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Missed questions"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case missedLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.missed[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

// toggle expands or collapses the selected round, loading its missed
// answers the first time.
func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.sessions) {
		return nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]

	id := s.sessions[s.selected].SessionID
	if _, ok := s.missed[id]; ok || !s.expanded[s.selected] {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QueryMissedAnswers(context.Background(), id)
		return missedLoadedMsg{SessionID: id, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No rounds yet. Press Esc and start playing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}

		b.WriteString(layout.Center(width, style.Render(prefix+summaryLine(sess))))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderMissed(width, sess.SessionID))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderMissed(width int, sessionID string) string {
	answers, ok := s.missed[sessionID]
	if !ok {
		return layout.Center(width, theme.Hint.Render("    Loading...")) + "\n"
	}
	if len(answers) == 0 {
		return layout.Center(width, theme.Correct.Render("    No misses this round")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		line := fmt.Sprintf("    %s  you said %s, answer %d", a.QuestionText, responseText(a.Response), a.CorrectAnswer)
		b.WriteString(layout.Center(width, theme.Incorrect.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

// responseText renders a stored response; unparseable input shows as "?".
func responseText(r int) string {
	if r == problemgen.InvalidAnswer {
		return "?"
	}
	return strconv.Itoa(r)
}

func summaryLine(r store.SessionSummaryRecord) string {
	marker := ""
	switch {
	case r.Perfect:
		marker = "  🌟"
	case r.NewRecord:
		marker = "  🏆"
	}
	elapsed := time.Duration(r.ElapsedMs) * time.Millisecond
	return fmt.Sprintf("%s  level %d  %d / %d  %s%s",
		r.Timestamp.Format("Jan 02 15:04"), r.Level, r.Score, r.Total,
		session.FormatInterval(elapsed), marker)
}
