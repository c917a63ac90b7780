package session

// LevelProgress tracks answers within a single level.
type LevelProgress struct {
	Answered int
	Correct  int
}

// Record adds a new answer result to the progress.
func (lp *LevelProgress) Record(correct bool) {
	lp.Answered++
	if correct {
		lp.Correct++
	}
}

// IsComplete returns true once the level's question quota is reached.
func (lp LevelProgress) IsComplete(questionsPerLevel int) bool {
	return lp.Answered >= questionsPerLevel
}

// IsPerfect returns true if every question of a complete level was correct.
func (lp LevelProgress) IsPerfect(questionsPerLevel int) bool {
	return lp.IsComplete(questionsPerLevel) && lp.Correct == questionsPerLevel
}

// IsFirstQuestion returns true before any answer in the level.
func (lp LevelProgress) IsFirstQuestion() bool {
	return lp.Answered == 0
}
