package session

import "fmt"

const (
	perfectText   = "🌟 PERFECT! 🌟"
	gameOverText  = "GAME OVER"
	newRecordText = "🏆 NEW RECORD! 🏆"
	noRecordText  = "🦆"
)

// describeFinish fills the display and narration texts of f.
func describeFinish(f *Finish) {
	if f.Perfect {
		f.OutcomeText = perfectText
		f.SpokenOutcome = "Perfect!"
	} else {
		f.OutcomeText = gameOverText
		f.SpokenOutcome = "Game over."
	}

	f.SpokenSummary = []string{
		f.SpokenOutcome,
		fmt.Sprintf("Level %d.", f.Level),
		fmt.Sprintf("%d out of %d in %s.", f.Score, f.MaxLevelScore, FormatInterval(f.Elapsed)),
	}

	switch {
	case f.NewRecord:
		f.Banner = newRecordText
		f.SpokenSummary = append(f.SpokenSummary, "New record!")
	case f.Record.HasBest():
		f.Banner = BestSummary(f.Record)
		f.SpokenSummary = append(f.SpokenSummary, fmt.Sprintf("Best: %d out of %d in %s.",
			f.Record.BestScore, f.Record.BestTotal, FormatInterval(f.Record.BestTime())))
	default:
		f.Banner = noRecordText
	}
}

// BestSummary renders the record as "Best: S / T in <interval>", or ""
// when no round has been recorded yet.
func BestSummary(r Record) string {
	if !r.HasBest() {
		return ""
	}
	return fmt.Sprintf("Best: %d / %d in %s", r.BestScore, r.BestTotal, FormatInterval(r.BestTime()))
}

// BestSummary renders the engine's current record.
func (e *Engine) BestSummary() string {
	return BestSummary(e.record)
}
