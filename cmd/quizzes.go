package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/store"
)

var quizzesCmd = &cobra.Command{
	Use:   "quizzes",
	Short: "List quizzes with stored stats",
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

		if use, _ := cmd.Flags().GetString("use"); use != "" {
			if err := backend.SetActiveQuiz(ctx, use); err != nil {
				return fmt.Errorf("set active quiz: %w", err)
			}
			cmd.Println("Active quiz:", use)
			return nil
		}

		ids, err := backend.Quizzes(ctx)
		if err != nil {
			return fmt.Errorf("list quizzes: %w", err)
		}
		if len(ids) == 0 {
			cmd.Println("No quizzes yet. Run 'quizdrill play --bank <path>' to start one.")
			return nil
		}

		active, err := backend.ActiveQuiz(ctx)
		if err != nil {
			return fmt.Errorf("active quiz: %w", err)
		}

		for _, id := range ids {
			marker := "  "
			if id == active {
				marker = "* "
			}
			cmd.Println(marker + id)
		}
		return nil
	},
}

func init() {
	quizzesCmd.Flags().String("use", "", "Set the active quiz id")
}
