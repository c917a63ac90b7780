package session

import (
	"time"

	"github.com/abhisek/maths/internal/problemgen"
)

// Cue names a sound the presentation layer may play.
type Cue string

const (
	CueCorrect Cue = "correct"
	CueWrong   Cue = "wrong"
	CueLevelUp Cue = "levelup"
	CueUnlock  Cue = "unlock"
	CueRecord  Cue = "record"
)

// Question is a question ready for display.
type Question struct {
	// Text is the visible question, e.g. "7 + 3 = ?".
	Text string

	// Spoken is the accessible phrasing, e.g. "7 plus 3".
	Spoken string

	// Tier is the tier the question was drawn from.
	Tier problemgen.Tier
}

// Grade is the outcome of one submitted answer.
type Grade struct {
	Correct    bool
	Response   int
	Answer     int
	AnswerText string // correct answer formatted for display
	Cue        Cue
}

// LevelUp signals a level transition.
type LevelUp struct {
	// Level is the new 1-based level. For Final it is the completed level.
	Level int

	// Unlocked is true when the level was never reached before.
	Unlocked bool

	// Final is true when the last level was completed; the round ends next.
	Final bool

	Cue Cue
}

// Finish reports the end of a round.
type Finish struct {
	Perfect       bool
	OutcomeText   string // "GAME OVER" or the perfect banner
	SpokenOutcome string
	Score         int
	TotalAnswered int
	MaxLevelScore int // best score attainable up to the level reached
	Level         int // 1-based level reached
	Elapsed       time.Duration
	NewRecord     bool
	Record        Record // record after the comparison
	Banner        string // new-record banner or best-record summary
	SpokenSummary []string
	Cue           Cue // CueRecord on a new record, empty otherwise
}

// AnswerResult is returned by SubmitAnswer.
type AnswerResult struct {
	// Restarted is true when the call arrived outside a round and started
	// a new one instead of grading.
	Restarted bool

	Grade   Grade
	LevelUp *LevelUp
	Finish  *Finish
}

// Presenter is the callback surface the engine drives. Calls are made
// synchronously from engine operations and must not block.
type Presenter interface {
	ShowQuestion(q Question)
	ShowGrade(g Grade)
	ShowLevelUp(l LevelUp)
	ShowFinish(f Finish)
}

// NopPresenter discards every callback.
type NopPresenter struct{}

func (NopPresenter) ShowQuestion(Question) {}
func (NopPresenter) ShowGrade(Grade)       {}
func (NopPresenter) ShowLevelUp(LevelUp)   {}
func (NopPresenter) ShowFinish(Finish)     {}
