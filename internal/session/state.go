package session

import "time"

// Phase represents where the engine is in its round lifecycle.
type Phase int

const (
	PhaseIdle     Phase = iota // Record loaded, waiting for the first restart
	PhaseInRound               // Serving questions
	PhaseFinished              // Round over, waiting for a restart
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInRound:
		return "in-round"
	case PhaseFinished:
		return "finished"
	default:
		return "idle"
	}
}

// SessionState tracks the runtime state of one round. It is owned by the
// Engine and mutated only through Engine operations.
type SessionState struct {
	// Phase is the current lifecycle phase.
	Phase Phase

	// Current is the pending question, nil between rounds.
	Current *Question

	// Score is the count of correct answers this round.
	Score int

	// Level is the 0-based index of the current tier.
	Level int

	// Progress tracks answers within the current level.
	Progress LevelProgress

	// TotalAnswered is the count of answers across all levels this round.
	TotalAnswered int

	// StartTime is when the round began, as reported by the engine's clock.
	StartTime time.Time

	// Used holds the display text of every question served this round.
	Used map[string]struct{}
}

// reset prepares the state for a new round started at now.
func (s *SessionState) reset(now time.Time) {
	s.Phase = PhaseInRound
	s.Current = nil
	s.Score = 0
	s.Level = 0
	s.Progress = LevelProgress{}
	s.TotalAnswered = 0
	s.StartTime = now
	clear(s.Used)
	if s.Used == nil {
		s.Used = make(map[string]struct{})
	}
}
