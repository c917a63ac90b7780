package session

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/abhisek/maths/internal/problemgen"
)

// DefaultQuestionsPerLevel is the question quota of each level.
const DefaultQuestionsPerLevel = 10

// Options holds the engine's collaborators. Nil fields get defaults.
type Options struct {
	// Generator produces problems; its tier count sets the number of levels.
	Generator problemgen.Generator

	// Rand drives tier selection for review questions.
	Rand problemgen.Source

	// Clock times the round.
	Clock Clock

	// Records persists the record on unlocks and new records.
	Records RecordStore

	// Presenter receives display callbacks.
	Presenter Presenter

	// QuestionsPerLevel is the per-level quota (default 10).
	QuestionsPerLevel int

	Logger *slog.Logger
}

// Engine is the quiz progression state machine: it serves questions,
// grades answers, advances levels and keeps the personal-best record.
//
// Engine is not safe for concurrent use; every operation runs to
// completion synchronously on the caller's goroutine.
type Engine struct {
	generator         problemgen.Generator
	rand              problemgen.Source
	clock             Clock
	records           RecordStore
	presenter         Presenter
	logger            *slog.Logger
	questionsPerLevel int

	state  SessionState
	record Record

	// currentAnswer is the answer to state.Current; meaningless when
	// state.Current is nil.
	currentAnswer int
}

// New creates an Engine in the Idle phase with an empty record.
func New(opts Options) *Engine {
	if opts.Rand == nil {
		opts.Rand = problemgen.NewSource()
	}
	if opts.Generator == nil {
		opts.Generator = problemgen.New(opts.Rand)
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Records == nil {
		opts.Records = nopRecordStore{}
	}
	if opts.Presenter == nil {
		opts.Presenter = NopPresenter{}
	}
	if opts.QuestionsPerLevel <= 0 {
		opts.QuestionsPerLevel = DefaultQuestionsPerLevel
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	return &Engine{
		generator:         opts.Generator,
		rand:              opts.Rand,
		clock:             opts.Clock,
		records:           opts.Records,
		presenter:         opts.Presenter,
		logger:            opts.Logger,
		questionsPerLevel: opts.QuestionsPerLevel,
		state:             SessionState{Used: make(map[string]struct{})},
	}
}

// Start installs the record loaded from storage and returns to Idle.
// It does not start a round.
func (e *Engine) Start(rec Record) {
	e.record = rec
	e.state.Phase = PhaseIdle
	e.state.Current = nil
}

// Restart begins a new round and serves its first question.
func (e *Engine) Restart() {
	e.state.reset(e.clock.Now())
	e.logger.Debug("round started")
	e.serveQuestion()
}

// SubmitAnswer grades response against the pending question.
//
// Outside a round the call is an implicit restart: a new round begins and
// the result has Restarted set.
func (e *Engine) SubmitAnswer(response int) AnswerResult {
	if e.state.Phase != PhaseInRound || e.state.Current == nil {
		e.Restart()
		return AnswerResult{Restarted: true}
	}

	answer := e.currentAnswer
	correct := response == answer
	grade := Grade{
		Correct:    correct,
		Response:   response,
		Answer:     answer,
		AnswerText: strconv.Itoa(answer),
		Cue:        CueWrong,
	}
	if correct {
		e.state.Score++
		grade.Cue = CueCorrect
	}
	e.presenter.ShowGrade(grade)

	e.state.Progress.Record(correct)
	e.state.TotalAnswered++

	result := AnswerResult{Grade: grade}
	if e.state.Progress.IsComplete(e.questionsPerLevel) {
		result.LevelUp, result.Finish = e.completeLevel()
		if result.Finish != nil {
			return result
		}
	}

	e.serveQuestion()
	return result
}

// completeLevel applies the advancement policy once a level's quota is
// answered. Content the player already unlocked is always passable;
// otherwise the level must be perfect. The last level always finishes.
func (e *Engine) completeLevel() (*LevelUp, *Finish) {
	level := e.state.Level
	canAdvance := level < e.maxLevel() &&
		(e.record.HighestLevel > level || e.state.Progress.IsPerfect(e.questionsPerLevel))

	if !canAdvance {
		var lu *LevelUp
		if level == e.maxLevel() {
			lu = &LevelUp{Level: level + 1, Final: true, Cue: CueLevelUp}
			e.presenter.ShowLevelUp(*lu)
		}
		f := e.finish()
		return lu, &f
	}

	e.state.Level++
	e.state.Progress = LevelProgress{}

	lu := LevelUp{Level: e.state.Level + 1, Cue: CueLevelUp}
	if e.state.Level > e.record.HighestLevel {
		e.record.HighestLevel = e.state.Level
		lu.Unlocked = true
		lu.Cue = CueUnlock
		e.saveRecord()
	}
	e.logger.Debug("level up", "level", lu.Level, "unlocked", lu.Unlocked)
	e.presenter.ShowLevelUp(lu)
	return &lu, nil
}

// finish ends the round and compares it against the record.
func (e *Engine) finish() Finish {
	e.state.Phase = PhaseFinished
	e.state.Current = nil
	elapsed := e.clock.Now().Sub(e.state.StartTime)

	f := Finish{
		Perfect:       e.state.Score == e.maxScore(),
		Score:         e.state.Score,
		TotalAnswered: e.state.TotalAnswered,
		MaxLevelScore: (e.state.Level + 1) * e.questionsPerLevel,
		Level:         e.state.Level + 1,
		Elapsed:       elapsed,
	}

	if e.record.Beats(f.Score, elapsed) {
		e.record.BestScore = f.Score
		e.record.BestTotal = f.TotalAnswered
		e.record.BestTimeMillis = elapsed.Milliseconds()
		e.record.HighestLevel = max(e.record.HighestLevel, e.state.Level)
		f.NewRecord = true
		f.Cue = CueRecord
		e.saveRecord()
	}
	f.Record = e.record
	describeFinish(&f)

	e.logger.Info("round finished",
		"score", f.Score,
		"total", f.TotalAnswered,
		"level", f.Level,
		"elapsed_ms", elapsed.Milliseconds(),
		"new_record", f.NewRecord)
	e.presenter.ShowFinish(f)
	return f
}

func (e *Engine) serveQuestion() {
	p := e.nextProblem()
	e.currentAnswer = p.Answer
	q := Question{Text: p.Text, Spoken: p.Spoken, Tier: p.Tier}
	e.state.Current = &q
	e.presenter.ShowQuestion(q)
}

// saveRecord persists the record. Storage is optional, so failures are
// logged and the round carries on.
func (e *Engine) saveRecord() {
	if err := e.records.SaveRecord(context.Background(), e.record); err != nil {
		e.logger.Warn("failed to save record", "error", err)
	}
}

func (e *Engine) maxLevel() int {
	return e.generator.Tiers() - 1
}

func (e *Engine) maxScore() int {
	return (e.maxLevel() + 1) * e.questionsPerLevel
}

// Score returns the number of correct answers this round.
func (e *Engine) Score() int { return e.state.Score }

// TotalAnswered returns the number of answers given this round.
func (e *Engine) TotalAnswered() int { return e.state.TotalAnswered }

// LevelDisplay returns the 1-based current level.
func (e *Engine) LevelDisplay() int { return e.state.Level + 1 }

// IsActive reports whether a round is in progress.
func (e *Engine) IsActive() bool { return e.state.Phase == PhaseInRound }

// Phase returns the lifecycle phase.
func (e *Engine) Phase() Phase { return e.state.Phase }

// Question returns the pending question, or nil outside a round.
func (e *Engine) Question() *Question {
	if e.state.Current == nil {
		return nil
	}
	q := *e.state.Current
	return &q
}

// AnsweredInLevel returns the number of answers given in the current level.
func (e *Engine) AnsweredInLevel() int { return e.state.Progress.Answered }

// QuestionsPerLevel returns the per-level quota.
func (e *Engine) QuestionsPerLevel() int { return e.questionsPerLevel }

// Record returns the current record.
func (e *Engine) Record() Record { return e.record }
