package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Record keys in the key-value store. Values are decimal strings.
const (
	KeyBestScore    = "score"
	KeyBestTotal    = "total"
	KeyBestTime     = "time"
	KeyHighestLevel = "level"
)

// Record is the best-ever round outcome, persisted across sessions.
type Record struct {
	BestScore      int
	BestTotal      int
	BestTimeMillis int64
	HighestLevel   int // 0-based
}

// BestTime returns the record time as a duration.
func (r Record) BestTime() time.Duration {
	return time.Duration(r.BestTimeMillis) * time.Millisecond
}

// HasBest returns true if a scored round has ever been recorded.
func (r Record) HasBest() bool {
	return r.BestTotal > 0
}

// Beats reports whether a round with the given score and elapsed time sets
// a new record: a higher score wins, an equal score wins only if faster.
func (r Record) Beats(score int, elapsed time.Duration) bool {
	if score > r.BestScore {
		return true
	}
	return score == r.BestScore && elapsed.Milliseconds() < r.BestTimeMillis
}

// KV is the key-value store backing the record.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
}

// RecordStore persists the record.
type RecordStore interface {
	SaveRecord(ctx context.Context, rec Record) error
}

// LoadRecord reads the record from kv. Missing, malformed, negative or
// unreadable values are treated as 0; it never fails. A nil kv yields the
// zero record.
func LoadRecord(ctx context.Context, kv KV, logger *slog.Logger) Record {
	if logger == nil {
		logger = discardLogger()
	}
	if kv == nil {
		return Record{}
	}

	read := func(key string) int64 {
		raw, ok, err := kv.Get(ctx, key)
		if err != nil {
			logger.Warn("read record value", "key", key, "error", err)
			return 0
		}
		if !ok {
			return 0
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			logger.Warn("ignoring malformed record value", "key", key, "value", raw)
			return 0
		}
		return n
	}

	return Record{
		BestScore:      int(read(KeyBestScore)),
		BestTotal:      int(read(KeyBestTotal)),
		BestTimeMillis: read(KeyBestTime),
		HighestLevel:   int(read(KeyHighestLevel)),
	}
}

type kvRecordStore struct {
	kv KV
}

// NewKVRecordStore returns a RecordStore writing the four record keys to kv.
func NewKVRecordStore(kv KV) RecordStore {
	return &kvRecordStore{kv: kv}
}

func (s *kvRecordStore) SaveRecord(ctx context.Context, rec Record) error {
	values := []struct {
		key   string
		value int64
	}{
		{KeyBestScore, int64(rec.BestScore)},
		{KeyBestTotal, int64(rec.BestTotal)},
		{KeyBestTime, rec.BestTimeMillis},
		{KeyHighestLevel, int64(rec.HighestLevel)},
	}
	for _, v := range values {
		if err := s.kv.Set(ctx, v.key, strconv.FormatInt(v.value, 10)); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

type nopRecordStore struct{}

func (nopRecordStore) SaveRecord(context.Context, Record) error { return nil }
