package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/maths/internal/problemgen"
)

func TestNew_StartsIdle(t *testing.T) {
	e := New(Options{})
	if e.IsActive() {
		t.Error("new engine should not be active")
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", e.Phase())
	}
	if e.QuestionsPerLevel() != DefaultQuestionsPerLevel {
		t.Errorf("QuestionsPerLevel = %d, want %d", e.QuestionsPerLevel(), DefaultQuestionsPerLevel)
	}
	if e.Question() != nil {
		t.Error("expected no question before a round")
	}
}

func TestStart_DoesNotStartRound(t *testing.T) {
	te := newTestEngine(6, 10, Record{BestScore: 3, BestTotal: 10, BestTimeMillis: 5000})
	if te.IsActive() {
		t.Fatal("Start must not begin a round")
	}
	if len(te.presenter.questions) != 0 {
		t.Errorf("Start should not show a question, got %d", len(te.presenter.questions))
	}
	if te.Record().BestScore != 3 {
		t.Errorf("record not installed: %+v", te.Record())
	}
}

func TestRestart_ResetsState(t *testing.T) {
	te := newTestEngine(6, 10, Record{})
	te.Restart()
	te.answerCorrect()
	te.answerWrong()

	te.Restart()

	if !te.IsActive() {
		t.Error("expected active after restart")
	}
	if te.Score() != 0 {
		t.Errorf("Score = %d, want 0", te.Score())
	}
	if te.TotalAnswered() != 0 {
		t.Errorf("TotalAnswered = %d, want 0", te.TotalAnswered())
	}
	if te.LevelDisplay() != 1 {
		t.Errorf("LevelDisplay = %d, want 1", te.LevelDisplay())
	}
	if te.AnsweredInLevel() != 0 {
		t.Errorf("AnsweredInLevel = %d, want 0", te.AnsweredInLevel())
	}
	if te.Question() == nil {
		t.Fatal("restart should serve a question")
	}
	last := te.presenter.questions[len(te.presenter.questions)-1]
	if last.Text != te.Question().Text {
		t.Errorf("presenter saw %q, engine holds %q", last.Text, te.Question().Text)
	}
}

func TestRestart_ClearsUsedQuestions(t *testing.T) {
	te := newTestEngine(6, 10, Record{})
	te.gen.texts = []string{"1 + 1 = ?", "2 + 2 = ?"}

	te.Restart()
	te.answerCorrect()
	if got := te.Question().Text; got != "2 + 2 = ?" {
		t.Fatalf("second question = %q, want %q", got, "2 + 2 = ?")
	}

	// Both texts are now used; the next round must accept them again.
	te.Restart()
	before := te.gen.calls
	te.answerCorrect()
	if got := te.gen.calls - before; got != 1 {
		t.Errorf("second question of the new round took %d generations, want 1", got)
	}

	before = te.gen.calls
	te.Restart()
	if got := te.gen.calls - before; got != 1 {
		t.Errorf("first question after restart took %d generations, want 1", got)
	}
	if got := te.Question().Text; got != "1 + 1 = ?" {
		t.Errorf("first question after restart = %q, want %q", got, "1 + 1 = ?")
	}
}

func TestSubmitAnswer_GradesAndCounts(t *testing.T) {
	te := newTestEngine(6, 10, Record{})
	te.Restart()

	res := te.answerCorrect()
	if !res.Grade.Correct || res.Grade.Cue != CueCorrect {
		t.Errorf("expected correct grade, got %+v", res.Grade)
	}

	want := te.currentAnswer
	res = te.answerWrong()
	if res.Grade.Correct || res.Grade.Cue != CueWrong {
		t.Errorf("expected wrong grade, got %+v", res.Grade)
	}
	if res.Grade.Answer != want {
		t.Errorf("grade answer = %d, want %d", res.Grade.Answer, want)
	}

	if te.Score() != 1 {
		t.Errorf("Score = %d, want 1", te.Score())
	}
	if te.TotalAnswered() != 2 {
		t.Errorf("TotalAnswered = %d, want 2", te.TotalAnswered())
	}
	if te.AnsweredInLevel() != 2 {
		t.Errorf("AnsweredInLevel = %d, want 2", te.AnsweredInLevel())
	}
	if len(te.presenter.grades) != 2 {
		t.Errorf("expected 2 grade callbacks, got %d", len(te.presenter.grades))
	}
	if len(te.presenter.questions) != 3 {
		t.Errorf("expected 3 questions served, got %d", len(te.presenter.questions))
	}
}

func TestSubmitAnswer_WhileIdleRestarts(t *testing.T) {
	te := newTestEngine(6, 10, Record{})

	res := te.SubmitAnswer(4)

	if !res.Restarted {
		t.Error("expected implicit restart")
	}
	if !te.IsActive() {
		t.Error("expected active after implicit restart")
	}
	if len(te.presenter.grades) != 0 {
		t.Error("implicit restart must not grade")
	}
	if te.Score() != 0 || te.TotalAnswered() != 0 {
		t.Errorf("score/total = %d/%d, want 0/0", te.Score(), te.TotalAnswered())
	}
}

func TestSubmitAnswer_WhileFinishedRestarts(t *testing.T) {
	te := newTestEngine(6, 2, Record{})
	te.Restart()
	res := te.playLevel(1)
	if res.Finish == nil {
		t.Fatal("expected round to finish")
	}

	res = te.SubmitAnswer(0)
	if !res.Restarted {
		t.Error("expected implicit restart from finished")
	}
	if te.Phase() != PhaseInRound {
		t.Errorf("phase = %v, want in-round", te.Phase())
	}
}

func TestLevelComplete_PerfectUnlocksNewLevel(t *testing.T) {
	te := newTestEngine(6, 10, Record{})
	te.Restart()

	res := te.playLevel(0)

	if res.LevelUp == nil {
		t.Fatal("expected level up")
	}
	if !res.LevelUp.Unlocked || res.LevelUp.Cue != CueUnlock {
		t.Errorf("expected unlock signal, got %+v", res.LevelUp)
	}
	if res.LevelUp.Level != 2 {
		t.Errorf("level up to %d, want 2", res.LevelUp.Level)
	}
	if res.Finish != nil {
		t.Error("round should continue")
	}
	if te.LevelDisplay() != 2 {
		t.Errorf("LevelDisplay = %d, want 2", te.LevelDisplay())
	}
	if te.AnsweredInLevel() != 0 {
		t.Errorf("AnsweredInLevel = %d, want 0", te.AnsweredInLevel())
	}
	if te.Record().HighestLevel != 1 {
		t.Errorf("HighestLevel = %d, want 1", te.Record().HighestLevel)
	}
	if len(te.store.saved) != 1 {
		t.Errorf("expected record saved once on unlock, got %d", len(te.store.saved))
	}
	if len(te.presenter.levelUps) != 1 {
		t.Errorf("expected exactly one level-up callback, got %d", len(te.presenter.levelUps))
	}
	if got := te.gen.tierLog[len(te.gen.tierLog)-1]; got != problemgen.Tier(1) {
		t.Errorf("first question of level 2 drawn from tier %v", got)
	}
}

func TestLevelComplete_PerfectAlreadyUnlocked(t *testing.T) {
	te := newTestEngine(6, 10, Record{HighestLevel: 3})
	te.Restart()

	res := te.playLevel(0)

	if res.LevelUp == nil {
		t.Fatal("expected level up")
	}
	if res.LevelUp.Unlocked || res.LevelUp.Cue != CueLevelUp {
		t.Errorf("expected normal level up, got %+v", res.LevelUp)
	}
	if len(te.store.saved) != 0 {
		t.Errorf("no record write expected, got %d", len(te.store.saved))
	}
}

func TestLevelComplete_ImperfectButUnlockedAdvances(t *testing.T) {
	te := newTestEngine(6, 10, Record{HighestLevel: 2})
	te.Restart()

	res := te.playLevel(4)

	if res.LevelUp == nil || res.Finish != nil {
		t.Fatalf("expected advance into unlocked level, got %+v", res)
	}
	if te.LevelDisplay() != 2 {
		t.Errorf("LevelDisplay = %d, want 2", te.LevelDisplay())
	}

	// Level 2 is unlocked too, so an imperfect run still advances.
	res = te.playLevel(9)
	if res.LevelUp == nil || te.LevelDisplay() != 3 {
		t.Fatalf("expected advance to level 3, got level %d", te.LevelDisplay())
	}

	// Level 3 was never passed: imperfect ends the round.
	res = te.playLevel(1)
	if res.Finish == nil {
		t.Fatal("expected finish at the first locked level")
	}
}

func TestLevelComplete_ImperfectLockedFinishes(t *testing.T) {
	te := newTestEngine(6, 10, Record{})
	te.Restart()

	res := te.playLevel(1)

	if res.LevelUp != nil {
		t.Errorf("no level up expected, got %+v", res.LevelUp)
	}
	if res.Finish == nil {
		t.Fatal("expected finish")
	}
	if te.IsActive() || te.Phase() != PhaseFinished {
		t.Errorf("phase = %v, want finished", te.Phase())
	}
	if te.Question() != nil {
		t.Error("no question should be pending after finish")
	}
	if res.Finish.OutcomeText != gameOverText {
		t.Errorf("outcome = %q", res.Finish.OutcomeText)
	}
}

func TestFinalLevel_Finishes(t *testing.T) {
	te := newTestEngine(2, 2, Record{})
	te.Restart()

	res := te.playLevel(0)
	if res.LevelUp == nil || !res.LevelUp.Unlocked {
		t.Fatalf("expected unlock into level 2, got %+v", res.LevelUp)
	}

	te.clock.Advance(90 * time.Second)
	res = te.playLevel(0)

	if res.LevelUp == nil || !res.LevelUp.Final {
		t.Fatalf("expected final level celebration, got %+v", res.LevelUp)
	}
	f := res.Finish
	if f == nil {
		t.Fatal("completing the last level must finish")
	}
	if !f.Perfect || f.OutcomeText != perfectText {
		t.Errorf("expected perfect finish, got %+v", f)
	}
	if !f.NewRecord || f.Banner != newRecordText || f.Cue != CueRecord {
		t.Errorf("expected new record banner, got %+v", f)
	}
	want := Record{BestScore: 4, BestTotal: 4, BestTimeMillis: 90000, HighestLevel: 1}
	if f.Record != want || te.Record() != want {
		t.Errorf("record = %+v, want %+v", f.Record, want)
	}
	if f.Level != 2 || f.MaxLevelScore != 4 {
		t.Errorf("level/max = %d/%d, want 2/4", f.Level, f.MaxLevelScore)
	}

	wantSpoken := []string{"Perfect!", "Level 2.", "4 out of 4 in 1 minute 30 seconds.", "New record!"}
	if len(f.SpokenSummary) != len(wantSpoken) {
		t.Fatalf("spoken summary = %q", f.SpokenSummary)
	}
	for i := range wantSpoken {
		if f.SpokenSummary[i] != wantSpoken[i] {
			t.Errorf("spoken[%d] = %q, want %q", i, f.SpokenSummary[i], wantSpoken[i])
		}
	}
	if len(te.store.saved) != 2 {
		t.Errorf("expected saves on unlock and record, got %d", len(te.store.saved))
	}
}

func TestFinish_AnyScoreBeatsEmptyRecord(t *testing.T) {
	te := newTestEngine(6, 10, Record{})
	te.Restart()
	te.clock.Advance(42 * time.Second)

	res := te.playLevel(5)

	f := res.Finish
	if f == nil || !f.NewRecord {
		t.Fatalf("expected new record, got %+v", f)
	}
	want := Record{BestScore: 5, BestTotal: 10, BestTimeMillis: 42000}
	if f.Record != want {
		t.Errorf("record = %+v, want %+v", f.Record, want)
	}
	if len(te.store.saved) != 1 || te.store.saved[0] != want {
		t.Errorf("saved = %+v", te.store.saved)
	}
}

func TestFinish_RecordComparison(t *testing.T) {
	prev := Record{BestScore: 5, BestTotal: 10, BestTimeMillis: 60000}

	tests := []struct {
		name      string
		wrong     int
		elapsed   time.Duration
		newRecord bool
	}{
		{"higher score slower", 4, 5 * time.Minute, true},
		{"equal score faster", 5, 30 * time.Second, true},
		{"equal score same time", 5, time.Minute, false},
		{"equal score slower", 5, 2 * time.Minute, false},
		{"lower score faster", 6, time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEngine(6, 10, prev)
			te.Restart()
			te.clock.Advance(tt.elapsed)

			f := te.playLevel(tt.wrong).Finish
			if f == nil {
				t.Fatal("expected finish")
			}
			if f.NewRecord != tt.newRecord {
				t.Errorf("NewRecord = %v, want %v", f.NewRecord, tt.newRecord)
			}
			if !tt.newRecord {
				if te.Record() != prev {
					t.Errorf("record changed to %+v", te.Record())
				}
				if len(te.store.saved) != 0 {
					t.Errorf("record written %d times", len(te.store.saved))
				}
				if f.Banner != "Best: 5 / 10 in 1 minute" {
					t.Errorf("banner = %q", f.Banner)
				}
			}
		})
	}
}

func TestFinish_ZeroScoreWithoutRecord(t *testing.T) {
	te := newTestEngine(6, 3, Record{})
	te.Restart()

	f := te.playLevel(3).Finish
	if f == nil {
		t.Fatal("expected finish")
	}
	if f.NewRecord {
		t.Error("zero score in zero time cannot beat an empty record")
	}
	if f.Banner != noRecordText {
		t.Errorf("banner = %q, want %q", f.Banner, noRecordText)
	}
}

func TestRecordSaveFailureIsTolerated(t *testing.T) {
	te := newTestEngine(6, 2, Record{})
	te.store.err = errStorage
	te.Restart()

	res := te.playLevel(0)
	if res.LevelUp == nil || !res.LevelUp.Unlocked {
		t.Fatalf("unlock should not depend on storage, got %+v", res)
	}
	if te.Record().HighestLevel != 1 {
		t.Errorf("in-memory record not updated: %+v", te.Record())
	}
}

func TestDuplicateAvoidance_GivesUpAfterSixAttempts(t *testing.T) {
	te := newTestEngine(6, 10, Record{})
	te.gen.texts = []string{"same"}
	te.Restart()
	if te.gen.calls != 1 {
		t.Fatalf("first question took %d attempts", te.gen.calls)
	}

	te.answerCorrect()
	if te.gen.calls != 1+maxDuplicateAttempts {
		t.Errorf("generate calls = %d, want %d", te.gen.calls, 1+maxDuplicateAttempts)
	}
	if te.Question().Text != "same" {
		t.Errorf("expected the duplicate to be accepted")
	}

	// Restart clears the used set, so the first question is fresh again.
	te.Restart()
	if te.gen.calls != 2+maxDuplicateAttempts {
		t.Errorf("generate calls after restart = %d, want %d", te.gen.calls, 2+maxDuplicateAttempts)
	}
}

func TestDuplicateAvoidance_Regenerates(t *testing.T) {
	te := newTestEngine(6, 10, Record{})
	te.gen.texts = []string{"a", "a", "b"}
	te.Restart()
	te.answerCorrect()

	if te.Question().Text != "b" {
		t.Errorf("question = %q, want b", te.Question().Text)
	}
	if te.gen.calls != 3 {
		t.Errorf("generate calls = %d, want 3", te.gen.calls)
	}
}

func TestPickTier_ReviewsEarlierTiers(t *testing.T) {
	te := newTestEngine(6, 3, Record{})
	te.Restart()
	te.playLevel(0)
	if te.LevelDisplay() != 2 {
		t.Fatalf("setup: level %d", te.LevelDisplay())
	}

	// Non-zero draw picks a review tier from [0, level].
	te.src.values = []int{1, 0}
	te.src.next = 0
	te.answerCorrect()
	if got := te.gen.tierLog[len(te.gen.tierLog)-1]; got != problemgen.TierAddition {
		t.Errorf("review tier = %v, want addition", got)
	}

	// Zero draw keeps the current level's tier.
	te.src.values = []int{0}
	te.src.next = 0
	te.answerCorrect()
	if got := te.gen.tierLog[len(te.gen.tierLog)-1]; got != problemgen.TierSubtraction {
		t.Errorf("tier = %v, want subtraction", got)
	}
}

func TestPickTier_FirstQuestionUsesLevelTier(t *testing.T) {
	te := newTestEngine(6, 10, Record{})
	te.src.values = []int{2, 0}
	te.Restart()
	if te.src.next != 0 {
		t.Errorf("first question of a level must not draw, drew %d", te.src.next)
	}
}

// Plays many rounds with random answers and checks the state invariants
// after every operation.
func TestInvariants_RandomPlay(t *testing.T) {
	src := rand.New(rand.NewPCG(3, 4))
	e := New(Options{
		Generator:         problemgen.New(src),
		Rand:              src,
		Clock:             newFakeClock(),
		QuestionsPerLevel: 5,
	})
	e.Start(Record{})
	qpl := e.QuestionsPerLevel()
	maxLevel := problemgen.NumTiers - 1

	for round := 0; round < 200; round++ {
		e.Restart()
		for e.IsActive() {
			resp := e.currentAnswer
			if src.IntN(8) == 0 {
				resp++
			}
			e.SubmitAnswer(resp)

			level := e.LevelDisplay() - 1
			if a := e.AnsweredInLevel(); a < 0 || a > qpl {
				t.Fatalf("answeredInLevel %d out of range", a)
			}
			if level < 0 || level > maxLevel {
				t.Fatalf("level %d out of range", level)
			}
			if e.Score() > (level+1)*qpl {
				t.Fatalf("score %d exceeds %d", e.Score(), (level+1)*qpl)
			}
			if e.Score() > e.TotalAnswered() {
				t.Fatalf("score %d exceeds total %d", e.Score(), e.TotalAnswered())
			}
		}
		if e.Record().HighestLevel > maxLevel {
			t.Fatalf("highest level %d out of range", e.Record().HighestLevel)
		}
	}
}
