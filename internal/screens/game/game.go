package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/maths/internal/problemgen"
	"github.com/abhisek/maths/internal/router"
	"github.com/abhisek/maths/internal/screen"
	"github.com/abhisek/maths/internal/screens/history"
	"github.com/abhisek/maths/internal/session"
	"github.com/abhisek/maths/internal/store"
	"github.com/abhisek/maths/internal/ui/components"
	"github.com/abhisek/maths/internal/ui/layout"

	"github.com/google/uuid"
)

// Deps are the game screen's collaborators.
type Deps struct {
	// Engine configures the quiz engine. Its Presenter is replaced by the
	// screen.
	Engine session.Options

	// Record is the personal best loaded from storage.
	Record session.Record

	// Events receives the session log. Optional.
	Events store.EventRepo

	// Feedback is how long the answer emoji stays up. Zero keeps it until
	// the next answer.
	Feedback time.Duration

	Logger *slog.Logger
}

// fadeMsg hides the answer emoji of grade number seq.
type fadeMsg struct {
	seq int
}

// GameScreen is the play screen. It drives the engine from key presses
// and renders what the engine reports through the session.Presenter
// callbacks.
type GameScreen struct {
	engine   *session.Engine
	events   store.EventRepo
	logger   *slog.Logger
	feedback time.Duration

	input     components.AnswerInput
	sessionID string

	question *session.Question
	grade    *session.Grade
	gradeSeq int
	levelUp  *session.LevelUp
	finish   *session.Finish

	// unlocked is set while playing a level first reached this round.
	unlocked bool

	correctInLevel int
	missedInLevel  int
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)
var _ session.Presenter = (*GameScreen)(nil)

// New creates the game screen and its engine, idle with deps.Record.
func New(deps Deps) *GameScreen {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &GameScreen{
		events:   deps.Events,
		logger:   logger,
		feedback: deps.Feedback,
		input:    components.NewAnswerInput("?", 4),
	}

	opts := deps.Engine
	opts.Presenter = s
	if opts.Logger == nil {
		opts.Logger = logger
	}
	s.engine = session.New(opts)
	s.engine.Start(deps.Record)
	return s
}

// Engine returns the engine behind the screen.
func (s *GameScreen) Engine() *session.Engine {
	return s.engine
}

func (s *GameScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *GameScreen) Title() string {
	return "Arithmetic"
}

func (s *GameScreen) Status() string {
	if s.engine.Phase() == session.PhaseIdle {
		return ""
	}
	return fmt.Sprintf("Level %s  ★ %d", s.levelMarker(), s.engine.Score())
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	if s.engine.IsActive() {
		return []layout.KeyHint{
			{Key: "0-9", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play"},
		{Key: "h", Description: "History"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fadeMsg:
		if msg.seq == s.gradeSeq {
			s.grade = nil
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s.submit()
		case "h":
			if !s.engine.IsActive() {
				// A pending fade would reach the history screen instead.
				s.grade = nil
				events := s.events
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(events)}
				}
			}
		}
	}

	if s.engine.IsActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit hands the typed answer to the engine. Outside a round the engine
// treats it as a restart.
func (s *GameScreen) submit() (screen.Screen, tea.Cmd) {
	response := problemgen.ParseAnswer(s.input.Value())
	s.input.Reset()

	if !s.engine.IsActive() {
		s.clearRound()
		res := s.engine.SubmitAnswer(response)
		if res.Restarted {
			s.sessionID = uuid.NewString()
			s.appendSession(store.SessionEventData{
				SessionID: s.sessionID,
				Action:    store.ActionStart,
			})
		}
		return s, nil
	}

	q := s.question
	level := s.engine.LevelDisplay()
	s.levelUp = nil

	res := s.engine.SubmitAnswer(response)
	if q != nil {
		s.appendAnswer(store.AnswerEventData{
			SessionID:     s.sessionID,
			Level:         level,
			Tier:          int(q.Tier),
			QuestionText:  q.Text,
			CorrectAnswer: res.Grade.Answer,
			Response:      res.Grade.Response,
			Correct:       res.Grade.Correct,
		})
	}
	if f := res.Finish; f != nil {
		s.appendSession(store.SessionEventData{
			SessionID: s.sessionID,
			Action:    store.ActionEnd,
			Score:     f.Score,
			Total:     f.TotalAnswered,
			Level:     f.Level,
			ElapsedMs: f.Elapsed.Milliseconds(),
			NewRecord: f.NewRecord,
			Perfect:   f.Perfect,
		})
	}
	return s, s.fadeCmd()
}

func (s *GameScreen) clearRound() {
	s.question = nil
	s.grade = nil
	s.levelUp = nil
	s.finish = nil
	s.unlocked = false
	s.correctInLevel = 0
	s.missedInLevel = 0
}

func (s *GameScreen) fadeCmd() tea.Cmd {
	if s.feedback <= 0 {
		return nil
	}
	seq := s.gradeSeq
	return tea.Tick(s.feedback, func(time.Time) tea.Msg {
		return fadeMsg{seq: seq}
	})
}

func (s *GameScreen) appendSession(data store.SessionEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendSessionEvent(context.Background(), data); err != nil {
		s.logger.Warn("failed to log session event", "action", data.Action, "error", err)
	}
}

func (s *GameScreen) appendAnswer(data store.AnswerEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendAnswerEvent(context.Background(), data); err != nil {
		s.logger.Warn("failed to log answer", "error", err)
	}
}

// levelMarker renders the 1-based level with its state marker: finished,
// freshly unlocked or normal.
func (s *GameScreen) levelMarker() string {
	switch {
	case s.engine.Phase() == session.PhaseFinished:
		return fmt.Sprintf("%d🔹", s.engine.LevelDisplay())
	case s.unlocked:
		return fmt.Sprintf("%d🔺", s.engine.LevelDisplay())
	default:
		return fmt.Sprintf("%d🔸", s.engine.LevelDisplay())
	}
}

// session.Presenter

func (s *GameScreen) ShowQuestion(q session.Question) {
	s.question = &q
}

func (s *GameScreen) ShowGrade(g session.Grade) {
	s.grade = &g
	s.gradeSeq++
	if g.Correct {
		s.correctInLevel++
	} else {
		s.missedInLevel++
	}
	s.logger.Debug("graded", "correct", g.Correct, "cue", g.Cue)
}

func (s *GameScreen) ShowLevelUp(l session.LevelUp) {
	s.levelUp = &l
	if !l.Final {
		s.unlocked = l.Unlocked
		s.correctInLevel = 0
		s.missedInLevel = 0
	}
	s.logger.Debug("level up", "level", l.Level, "cue", l.Cue)
}

func (s *GameScreen) ShowFinish(f session.Finish) {
	s.finish = &f
	s.question = nil
	s.logger.Debug("narration", "lines", f.SpokenSummary)
}
