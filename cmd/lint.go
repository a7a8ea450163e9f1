package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/bank"
	"github.com/abhisek/quizdrill/internal/banklint"
)

var lintCmd = &cobra.Command{
	Use:   "lint [bank.json...]",
	Short: "Check question banks for authoring problems",
	Long:  "Lint validates banks against the schema and flags authoring problems such as duplicate ids, near-duplicate options, and answers that stand out by length.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sources := args
		if len(sources) == 0 {
			if s, _ := cmd.Flags().GetString("bank"); s != "" {
				sources = []string{s}
			}
		}
		if len(sources) == 0 {
			return fmt.Errorf("nothing to lint: pass bank paths or --bank")
		}

		failed := false
		for _, source := range sources {
			res, err := bank.Load(cmd.Context(), source)
			if err != nil {
				cmd.PrintErrf("%s: %v\n", source, err)
				failed = true
				continue
			}
			for _, w := range res.Warnings {
				cmd.PrintErrf("%s: warning: %s\n", source, w)
			}

			findings := banklint.Lint(res.Bank)
			if len(findings) == 0 {
				cmd.Printf("%s: %d questions, no findings\n", source, len(res.Bank.Questions))
				continue
			}
			for _, f := range findings {
				cmd.Printf("%s: %-7s %-16s %s: %s\n", source, f.Severity, f.Rule, f.QuestionID, f.Message)
			}
			if banklint.HasErrors(findings) {
				failed = true
			}
		}

		if failed {
			return fmt.Errorf("lint found errors")
		}
		return nil
	},
}
