package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/app"
	"github.com/abhisek/quizdrill/internal/history"
	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/store"
)

// runApp opens the store, loads the bank and its stats, and launches
// the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	b, err := loadBank(cmd)
	if err != nil {
		return err
	}
	quizID, err := resolveQuizID(cmd)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	backend, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer backend.Close()

	stats, err := history.Load(ctx, backend, quizID, b.QuestionIDs())
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	if err := backend.SetActiveQuiz(ctx, quizID); err != nil {
		return fmt.Errorf("set active quiz: %w", err)
	}

	return app.Run(app.Options{
		Engine: quiz.NewEngine(b, stats, nil),
	})
}
