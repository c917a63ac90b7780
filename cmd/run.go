package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhisek/maths/internal/app"
	"github.com/abhisek/maths/internal/config"
	"github.com/abhisek/maths/internal/screens/game"
	"github.com/abhisek/maths/internal/session"
	"github.com/spf13/cobra"
)

// runGame opens the store, loads the record, and launches the TUI.
func runGame(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := tuiLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	kv := st.KVRepo()
	rec := session.LoadRecord(cmd.Context(), kv, logger)
	logger.Info("starting", "best_score", rec.BestScore, "highest_level", rec.HighestLevel+1)

	return app.Run(game.Deps{
		Engine: session.Options{
			Records:           session.NewKVRecordStore(kv),
			QuestionsPerLevel: cfg.QuestionsPerLevel,
		},
		Record:   rec,
		Events:   st.EventRepo(),
		Feedback: cfg.FeedbackDuration,
		Logger:   logger,
	})
}

// tuiLogger writes to the configured log file. The alt screen owns the
// terminal, so without a file the logs are discarded.
func tuiLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return newLogger(cmd, io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(cmd, f), func() { f.Close() }, nil
}
