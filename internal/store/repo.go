package store

import (
	"context"
	"time"
)

// KVRepo is a string key-value store. The game keeps its personal-best
// record here as four decimal-string values.
type KVRepo interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures the start or end of a round.
type SessionEventData struct {
	SessionID string
	Action    string // ActionStart or ActionEnd
	Score     int
	Total     int
	Level     int // 1-based level reached
	ElapsedMs int64
	NewRecord bool
	Perfect   bool
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID     string
	Level         int // 1-based
	Tier          int
	QuestionText  string
	CorrectAnswer int
	Response      int
	Correct       bool
}

// SessionSummaryRecord is a finished round as listed in history.
type SessionSummaryRecord struct {
	SessionID string
	Timestamp time.Time
	Score     int
	Total     int
	Level     int
	ElapsedMs int64
	NewRecord bool
	Perfect   bool
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	Sequence      int64
	Timestamp     time.Time
	SessionID     string
	Level         int
	Tier          int
	QuestionText  string
	CorrectAnswer int
	Response      int
	Correct       bool
}

// TierAccuracy aggregates all answers recorded for a tier.
type TierAccuracy struct {
	Tier     int
	Answered int
	Correct  int
}

// Accuracy returns Correct/Answered, or 0 with no answers.
func (t TierAccuracy) Accuracy() float64 {
	if t.Answered == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Answered)
}

// EventRepo provides append and query access to the session log.
type EventRepo interface {
	// AppendSessionEvent records a round start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a graded answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns finished rounds, newest first.
	// A limit of 0 means unlimited.
	QuerySessionSummaries(ctx context.Context, limit int) ([]SessionSummaryRecord, error)

	// QueryMissedAnswers returns the wrong answers of a session in order.
	QueryMissedAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	// TierAccuracy returns per-tier totals ordered by tier.
	TierAccuracy(ctx context.Context) ([]TierAccuracy, error)

	// Clear deletes every session and answer event.
	Clear(ctx context.Context) error
}
