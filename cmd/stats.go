package cmd

import (
	"fmt"
	"io"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/maths/internal/problemgen"
	"github.com/abhisek/maths/internal/session"
	"github.com/abhisek/maths/internal/store"
	"github.com/abhisek/maths/internal/ui/theme"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the personal best and per-level accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		rec := session.LoadRecord(ctx, st.KVRepo(), stderrLogger(cmd))
		acc, err := st.EventRepo().TierAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("load accuracy: %w", err)
		}
		rounds, err := st.EventRepo().QuerySessionSummaries(ctx, 0)
		if err != nil {
			return fmt.Errorf("load rounds: %w", err)
		}

		return writeStats(cmd.OutOrStdout(), rec, len(rounds), acc)
	},
}

func writeStats(out io.Writer, rec session.Record, rounds int, acc []store.TierAccuracy) error {
	if best := session.BestSummary(rec); best != "" {
		fmt.Fprintln(out, best)
	} else {
		fmt.Fprintln(out, "No record yet.")
	}
	fmt.Fprintf(out, "Highest level: %d\n", rec.HighestLevel+1)
	fmt.Fprintf(out, "Rounds played: %d\n", rounds)

	if len(acc) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	_, err := lipgloss.Fprintln(out, accuracyTable(acc))
	return err
}

// accuracyTable renders one row per tier. Numeric columns are right-aligned.
func accuracyTable(acc []store.TierAccuracy) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.TableBorder).
		Headers("LEVEL", "OPERATION", "ANSWERED", "CORRECT", "ACCURACY").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.TableHeader
			case col == 1:
				return theme.TableCell
			default:
				return theme.TableNumber
			}
		})

	for _, a := range acc {
		t.Row(
			strconv.Itoa(a.Tier+1),
			problemgen.Tier(a.Tier).String(),
			strconv.Itoa(a.Answered),
			strconv.Itoa(a.Correct),
			fmt.Sprintf("%.0f%%", a.Accuracy()*100),
		)
	}
	return t
}
