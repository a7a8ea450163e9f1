package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/history"
	"github.com/abhisek/quizdrill/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe stored stats for one quiz",
	Long:  "Reset deletes the lifetime and session history of a single quiz. Other quizzes in the same database are untouched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		backend, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer backend.Close()

		quizID, err := activeQuizID(ctx, cmd, backend)
		if err != nil {
			return err
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			cmd.Printf("Delete all stats for quiz %q? [y/N] ", quizID)
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				cmd.Println("Aborted.")
				return nil
			}
		}

		stats, err := history.Load(ctx, backend, quizID, nil)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		if err := stats.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}

		cmd.Println("Stats cleared for quiz", quizID)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
