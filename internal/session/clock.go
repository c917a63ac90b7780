package session

import (
	"io"
	"log/slog"
	"time"
)

// Clock supplies the current time. Elapsed time is computed with
// time.Time.Sub, so a clock whose times carry a monotonic reading (as
// time.Now does) is immune to wall-clock jumps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
