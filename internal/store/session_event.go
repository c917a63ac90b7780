package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(sessionTable).
		Columns("sequence", "timestamp", "session_id", "action",
			"score", "total", "level", "elapsed_ms", "new_record", "perfect").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Action,
			data.Score, data.Total, data.Level, data.ElapsedMs, data.NewRecord, data.Perfect).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(answerTable).
		Columns("sequence", "timestamp", "session_id", "level", "tier",
			"question_text", "correct_answer", "response", "correct").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Level, data.Tier,
			data.QuestionText, data.CorrectAnswer, data.Response, data.Correct).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, limit int) ([]SessionSummaryRecord, error) {
	sel := builder().
		Select("session_id", "timestamp", "score", "total", "level", "elapsed_ms", "new_record", "perfect").
		From(entsql.Table(sessionTable)).
		Where(entsql.EQ("action", ActionEnd)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var results []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		var ts int64
		if err := rows.Scan(&rec.SessionID, &ts, &rec.Score, &rec.Total, &rec.Level,
			&rec.ElapsedMs, &rec.NewRecord, &rec.Perfect); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session summaries: %w", err)
	}
	return results, nil
}

func (r *eventRepo) QueryMissedAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	query, args := builder().
		Select("sequence", "timestamp", "session_id", "level", "tier",
			"question_text", "correct_answer", "response", "correct").
		From(entsql.Table(answerTable)).
		Where(entsql.And(
			entsql.EQ("session_id", sessionID),
			entsql.EQ("correct", false),
		)).
		OrderBy(entsql.Asc("sequence")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query missed answers: %w", err)
	}
	defer rows.Close()

	var results []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		var ts int64
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.Level, &rec.Tier,
			&rec.QuestionText, &rec.CorrectAnswer, &rec.Response, &rec.Correct); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return results, nil
}

func (r *eventRepo) TierAccuracy(ctx context.Context) ([]TierAccuracy, error) {
	query, args := builder().
		Select("tier", "correct", entsql.As(entsql.Count("*"), "n")).
		From(entsql.Table(answerTable)).
		GroupBy("tier", "correct").
		OrderBy(entsql.Asc("tier")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query tier accuracy: %w", err)
	}
	defer rows.Close()

	var results []TierAccuracy
	for rows.Next() {
		var (
			tier, n int
			correct bool
		)
		if err := rows.Scan(&tier, &correct, &n); err != nil {
			return nil, fmt.Errorf("scan tier accuracy: %w", err)
		}
		if len(results) == 0 || results[len(results)-1].Tier != tier {
			results = append(results, TierAccuracy{Tier: tier})
		}
		ta := &results[len(results)-1]
		ta.Answered += n
		if correct {
			ta.Correct += n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tier accuracy: %w", err)
	}
	return results, nil
}

func (r *eventRepo) Clear(ctx context.Context) error {
	for _, table := range []string{sessionTable, answerTable} {
		query, args := builder().Delete(table).Query()
		if err := r.drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
