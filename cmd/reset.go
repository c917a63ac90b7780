package cmd

import (
	"fmt"

	"github.com/abhisek/maths/internal/session"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the personal best",
	Long:  "Clears the stored record and unlocked levels. With --all the round history is cleared too.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

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
		keys := []string{session.KeyBestScore, session.KeyBestTotal, session.KeyBestTime, session.KeyHighestLevel}
		if err := st.KVRepo().Delete(ctx, keys...); err != nil {
			return fmt.Errorf("clear record: %w", err)
		}
		if all {
			if err := st.EventRepo().Clear(ctx); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Record cleared.")
		if all {
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also clear the round history")
}
