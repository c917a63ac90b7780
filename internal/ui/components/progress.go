package components

import (
	"strings"

	"github.com/abhisek/maths/internal/ui/theme"
)

// LevelTrack shows one cell per question of a level: correct answers,
// missed answers, then the questions still to come.
type LevelTrack struct {
	Correct int
	Missed  int
	Total   int
}

// View renders the track, e.g. "●●✕○○".
func (t LevelTrack) View() string {
	correct := clamp(t.Correct, 0, t.Total)
	missed := clamp(t.Missed, 0, t.Total-correct)
	rest := t.Total - correct - missed

	return theme.ProgressFilled.Render(strings.Repeat("●", correct)) +
		theme.ProgressMissed.Render(strings.Repeat("✕", missed)) +
		theme.ProgressEmpty.Render(strings.Repeat("○", rest))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
