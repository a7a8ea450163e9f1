package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/bank"
	"github.com/abhisek/quizdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizdrill",
	Short: "Spaced-repetition quiz drills in your terminal",
	Long:  "Quizdrill — terminal app that drills multiple-choice question banks, always serving your weakest question first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDRILL_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Question bank: local JSON path or HTTP(S) URL")
	rootCmd.PersistentFlags().String("checksum", "", "Expected SHA-256 of a bank fetched by URL")
	rootCmd.PersistentFlags().String("quiz", "", "Quiz id for stats storage (defaults to the bank file name)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(quizzesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(authorCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then QUIZDRILL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadBank reads the bank named by --bank, using --checksum when the
// source is a URL. Warnings are printed, not fatal.
func loadBank(cmd *cobra.Command) (*bank.Bank, error) {
	source, _ := cmd.Flags().GetString("bank")
	if source == "" {
		return nil, fmt.Errorf("no bank given: pass --bank <path-or-url>")
	}

	var res *bank.LoadResult
	var err error
	checksum, _ := cmd.Flags().GetString("checksum")
	if checksum != "" {
		res, err = bank.LoadVerified(cmd.Context(), source, checksum)
	} else {
		res, err = bank.Load(cmd.Context(), source)
	}
	if err != nil {
		return nil, err
	}

	for _, w := range res.Warnings {
		cmd.PrintErrln("warning:", w)
	}
	return res.Bank, nil
}

// resolveQuizID picks the id that namespaces this quiz's stats: the
// --quiz flag, else the bank file name without extension.
func resolveQuizID(cmd *cobra.Command) (string, error) {
	if id, _ := cmd.Flags().GetString("quiz"); id != "" {
		return id, nil
	}
	source, _ := cmd.Flags().GetString("bank")
	if source == "" {
		return "", fmt.Errorf("no quiz id: pass --quiz or --bank")
	}
	base := filepath.Base(strings.TrimRight(source, "/"))
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		return "", fmt.Errorf("cannot derive quiz id from %q: pass --quiz", source)
	}
	return base, nil
}

// activeQuizID resolves a quiz id for commands that work without a
// bank: the --quiz flag, else the stored active quiz.
func activeQuizID(ctx context.Context, cmd *cobra.Command, backend *store.SQLiteBackend) (string, error) {
	if id, _ := cmd.Flags().GetString("quiz"); id != "" {
		return id, nil
	}
	id, err := backend.ActiveQuiz(ctx)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("no active quiz: pass --quiz or run 'quizdrill quizzes --use <id>'")
	}
	return id, nil
}
