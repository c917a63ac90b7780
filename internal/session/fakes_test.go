package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/maths/internal/problemgen"
)

// seqGenerator yields unique problems "n + 0 = ?" unless texts is set, in
// which case it cycles through texts.
type seqGenerator struct {
	tiers   int
	texts   []string
	calls   int
	tierLog []problemgen.Tier
}

func (g *seqGenerator) Generate(tier problemgen.Tier) problemgen.Problem {
	g.calls++
	g.tierLog = append(g.tierLog, tier)
	if len(g.texts) > 0 {
		text := g.texts[(g.calls-1)%len(g.texts)]
		return problemgen.Problem{Text: text, Spoken: text, Answer: 1, Tier: tier}
	}
	return problemgen.Problem{
		Text:   fmt.Sprintf("%d + 0 = ?", g.calls),
		Spoken: fmt.Sprintf("%d plus 0", g.calls),
		Answer: g.calls,
		Tier:   tier,
	}
}

func (g *seqGenerator) Tiers() int { return g.tiers }

// cycleSource returns values in order, wrapping around; zero if empty.
type cycleSource struct {
	values []int
	next   int
}

func (s *cycleSource) IntN(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// recordingPresenter captures every callback.
type recordingPresenter struct {
	questions []Question
	grades    []Grade
	levelUps  []LevelUp
	finishes  []Finish
}

func (p *recordingPresenter) ShowQuestion(q Question) { p.questions = append(p.questions, q) }
func (p *recordingPresenter) ShowGrade(g Grade)       { p.grades = append(p.grades, g) }
func (p *recordingPresenter) ShowLevelUp(l LevelUp)   { p.levelUps = append(p.levelUps, l) }
func (p *recordingPresenter) ShowFinish(f Finish)     { p.finishes = append(p.finishes, f) }

type memoryRecordStore struct {
	saved []Record
	err   error
}

func (m *memoryRecordStore) SaveRecord(_ context.Context, rec Record) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, rec)
	return nil
}

// mapKV is an in-memory KV.
type mapKV struct {
	values map[string]string
	getErr error
}

func newMapKV() *mapKV {
	return &mapKV{values: make(map[string]string)}
}

func (m *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mapKV) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

var errStorage = errors.New("storage unavailable")

type testEngine struct {
	*Engine
	gen       *seqGenerator
	clock     *fakeClock
	presenter *recordingPresenter
	store     *memoryRecordStore
	src       *cycleSource
}

func newTestEngine(tiers, perLevel int, rec Record) *testEngine {
	te := &testEngine{
		gen:       &seqGenerator{tiers: tiers},
		clock:     newFakeClock(),
		presenter: &recordingPresenter{},
		store:     &memoryRecordStore{},
		src:       &cycleSource{},
	}
	te.Engine = New(Options{
		Generator:         te.gen,
		Rand:              te.src,
		Clock:             te.clock,
		Records:           te.store,
		Presenter:         te.presenter,
		QuestionsPerLevel: perLevel,
	})
	te.Start(rec)
	return te
}

func (te *testEngine) answerCorrect() AnswerResult {
	return te.SubmitAnswer(te.currentAnswer)
}

func (te *testEngine) answerWrong() AnswerResult {
	return te.SubmitAnswer(te.currentAnswer + 1)
}

// playLevel answers a full level, getting wrong answers wrong and the rest right.
func (te *testEngine) playLevel(wrong int) AnswerResult {
	var res AnswerResult
	for i := 0; i < te.questionsPerLevel; i++ {
		if i < wrong {
			res = te.answerWrong()
		} else {
			res = te.answerCorrect()
		}
	}
	return res
}
