package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/abhisek/maths/internal/problemgen"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print generated questions per level (no database)",
	Long: `Generate sample questions for one level or all of them.

This is a stateless developer tool: no database, no record, no history.
With --check every question is re-evaluated from its text; with --quiz
you answer them yourself.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("tier", "", "Level to preview: add, sub, add3, mixed, mul, div or 1-6 (default all)")
	previewCmd.Flags().Int("count", 5, "Number of questions per level")
	previewCmd.Flags().Uint64("seed", 0, "Random seed for repeatable output (default random)")
	previewCmd.Flags().Bool("check", false, "Verify each answer by evaluating the question text")
	previewCmd.Flags().Bool("quiz", false, "Answer the questions interactively")
}

type previewOptions struct {
	tiers []problemgen.Tier
	count int
	check bool
	quiz  bool
}

func runPreview(cmd *cobra.Command, args []string) error {
	tierVal, _ := cmd.Flags().GetString("tier")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	check, _ := cmd.Flags().GetBool("check")
	quiz, _ := cmd.Flags().GetBool("quiz")

	if count <= 0 {
		return fmt.Errorf("invalid count %d: must be positive", count)
	}

	opts := previewOptions{count: count, check: check, quiz: quiz}
	if tierVal == "" {
		for i := range problemgen.NumTiers {
			opts.tiers = append(opts.tiers, problemgen.Tier(i))
		}
	} else {
		tier, err := problemgen.ParseTier(tierVal)
		if err != nil {
			return err
		}
		opts.tiers = []problemgen.Tier{tier}
	}

	src := problemgen.NewSource()
	if seed != 0 {
		src = rand.New(rand.NewPCG(seed, seed))
	}

	failed, err := preview(cmd.InOrStdin(), cmd.OutOrStdout(), problemgen.New(src), opts)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d question(s) failed the math check", failed)
	}
	return nil
}

// preview prints opts.count problems per tier and returns how many failed
// the math check.
func preview(in io.Reader, out io.Writer, gen problemgen.Generator, opts previewOptions) (int, error) {
	scanner := bufio.NewScanner(in)
	var failed, correct, asked int

	for _, tier := range opts.tiers {
		fmt.Fprintf(out, "── Level %d: %s ──\n", int(tier)+1, tier)

		for i := 1; i <= opts.count; i++ {
			p := gen.Generate(tier)
			line := fmt.Sprintf("%2d. %-16s %s", i, p.Text, p.Spoken)
			if !opts.quiz {
				line += fmt.Sprintf("  → %d", p.Answer)
			}
			if opts.check {
				if err := problemgen.Check(p); err != nil {
					failed++
					line += "  ✗ " + err.Error()
				} else {
					line += "  ✓"
				}
			}
			fmt.Fprintln(out, line)

			if !opts.quiz {
				continue
			}
			fmt.Fprint(out, "    Your answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				return failed, scanner.Err()
			}
			asked++
			if problemgen.ParseAnswer(scanner.Text()) == p.Answer {
				correct++
				fmt.Fprintln(out, "    \033[32m✓ Correct!\033[0m")
			} else {
				fmt.Fprintf(out, "    \033[31m✗ Wrong.\033[0m Answer: %d\n", p.Answer)
			}
		}
		fmt.Fprintln(out)
	}

	if opts.quiz {
		fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, asked)
	}
	if opts.check {
		fmt.Fprintf(out, "Math check: %d failed\n", failed)
	}
	return failed, nil
}
