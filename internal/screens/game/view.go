package game

import (
	"fmt"
	"strings"

	"github.com/abhisek/maths/internal/session"
	"github.com/abhisek/maths/internal/ui/components"
	"github.com/abhisek/maths/internal/ui/layout"
	"github.com/abhisek/maths/internal/ui/theme"
)

const (
	correctEmoji = "✅"
	wrongEmoji   = "❌"
)

func (s *GameScreen) View(width, height int) string {
	switch s.engine.Phase() {
	case session.PhaseInRound:
		return s.renderRound(width)
	case session.PhaseFinished:
		return s.renderFinish(width)
	default:
		return s.renderIdle(width)
	}
}

func (s *GameScreen) renderIdle(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Ready?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf(
		"%d questions per level. Get a level all right to unlock the next.",
		s.engine.QuestionsPerLevel())))
	b.WriteString("\n\n")

	if best := s.engine.BestSummary(); best != "" {
		b.WriteString(layout.Center(width, theme.Banner.Render(best)))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Center(width, theme.Hint.Render("Press Enter to start")))
	return b.String()
}

func (s *GameScreen) renderRound(width int) string {
	var b strings.Builder
	b.WriteString("\n")

	track := components.LevelTrack{
		Correct: s.correctInLevel,
		Missed:  s.missedInLevel,
		Total:   s.engine.QuestionsPerLevel(),
	}
	info := fmt.Sprintf("Level %s   %s", s.levelMarker(), track.View())
	b.WriteString(layout.Center(width, theme.Body.Render(info)))
	b.WriteString("\n\n")

	if s.levelUp != nil {
		b.WriteString(layout.Center(width, theme.Outcome.Render(levelUpText(*s.levelUp))))
		b.WriteString("\n\n")
	}

	if q := s.question; q != nil {
		b.WriteString(layout.Center(width, theme.Question.Render(q.Text)))
		b.WriteString("\n")
		b.WriteString(layout.Center(width, theme.Spoken.Render(q.Spoken)))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Center(width, s.input.View()+"  "+s.renderGrade()))
	return b.String()
}

func (s *GameScreen) renderFinish(width int) string {
	f := s.finish
	if f == nil {
		return s.renderIdle(width)
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, theme.Outcome.Render(f.OutcomeText)))
	b.WriteString("\n\n")

	var lines []string
	if s.levelUp != nil && s.levelUp.Final {
		lines = append(lines, levelUpText(*s.levelUp))
	}
	lines = append(lines,
		fmt.Sprintf("Level %s", s.levelMarker()),
		fmt.Sprintf("%d / %d in %s", f.Score, f.MaxLevelScore, session.FormatInterval(f.Elapsed)),
	)
	if g := s.renderGrade(); g != "" {
		lines = append(lines, g)
	}
	for _, l := range lines {
		b.WriteString(layout.Center(width, theme.Body.Render(l)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Banner.Render(f.Banner)))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, theme.Hint.Render("Enter to play again · h for history")))
	return b.String()
}

// renderGrade shows the last answer's emoji until it fades. A miss also
// shows the expected answer.
func (s *GameScreen) renderGrade() string {
	g := s.grade
	if g == nil {
		return ""
	}
	if g.Correct {
		return theme.Correct.Render(correctEmoji)
	}
	return theme.Incorrect.Render(wrongEmoji + " " + g.AnswerText)
}

func levelUpText(l session.LevelUp) string {
	switch {
	case l.Final:
		return fmt.Sprintf("Level %d complete!", l.Level)
	case l.Unlocked:
		return fmt.Sprintf("Level %d unlocked!", l.Level)
	default:
		return fmt.Sprintf("Level %d", l.Level)
	}
}
