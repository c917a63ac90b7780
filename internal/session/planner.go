package session

import "github.com/abhisek/maths/internal/problemgen"

// maxDuplicateAttempts bounds regeneration of questions already served
// this round. After that the duplicate is accepted rather than stalling.
const maxDuplicateAttempts = 6

// pickTier chooses the tier for the next question. The first question of
// a level always uses the level's tier; later ones draw 0..2 and on a
// non-zero draw review a uniformly random tier in [0, level].
func (e *Engine) pickTier() problemgen.Tier {
	level := e.state.Level
	if e.state.Progress.IsFirstQuestion() {
		return problemgen.Tier(level)
	}
	if e.rand.IntN(3) != 0 {
		return problemgen.Tier(e.rand.IntN(level + 1))
	}
	return problemgen.Tier(level)
}

// nextProblem generates a question not served this round, giving up after
// maxDuplicateAttempts and marking the result as used.
func (e *Engine) nextProblem() problemgen.Problem {
	var p problemgen.Problem
	for attempt := 0; attempt < maxDuplicateAttempts; attempt++ {
		p = e.generator.Generate(e.pickTier())
		if _, seen := e.state.Used[p.Text]; !seen {
			break
		}
	}
	e.state.Used[p.Text] = struct{}{}
	return p
}
