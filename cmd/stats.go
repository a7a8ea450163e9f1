package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/history"
	"github.com/abhisek/quizdrill/internal/progress"
	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/store"
	"github.com/abhisek/quizdrill/internal/topics"
	"github.com/abhisek/quizdrill/internal/ui/components"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime mastery and topic breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		stats, err := history.LoadReadOnly(ctx, backend, quizID, b.QuestionIDs())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		engine := quiz.NewEngine(b, stats, nil)
		cmd.Println(renderStats(engine))
		return nil
	},
}

func renderStats(engine *quiz.Engine) string {
	var sb strings.Builder

	sb.WriteString(theme.Body.Bold(true).Render(engine.Bank().Title))
	sb.WriteString("\n\n")

	sum := engine.MasterySummary()
	sb.WriteString(fmt.Sprintf(
		"  🏆 Mastered          %3d\n"+
			"  ✓ Mostly correct    %3d\n"+
			"  ✗ Mostly incorrect  %3d\n"+
			"  ⚠ Critical          %3d\n"+
			"  · Unattempted       %3d\n\n",
		sum.Mastered, sum.MostlyCorrect, sum.MostlyIncorrect, sum.Critical, sum.Unattempted))

	bar := components.NewProgressBar("  Coverage", float64(sum.Coverage())/100, true, 50)
	sb.WriteString(bar.View())
	sb.WriteString("\n\n")

	tree := engine.TopicTree()
	sb.WriteString(theme.Subtitle.Align(lipgloss.Left).Render("Topics"))
	sb.WriteString("\n")
	writeTopicNode(&sb, tree, 1)

	if weakest := tree.Weakest(); weakest != nil && weakest != tree {
		wa := weakest.Accuracy()
		sb.WriteString("\n")
		sb.WriteString(theme.Hint.Render(fmt.Sprintf(
			"Weakest topic: %s (%d%%)", weakest.Name, wa.Percentage)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// writeTopicNode renders one tree node and recurses into its children
// in sorted order.
func writeTopicNode(sb *strings.Builder, n *topics.Node, depth int) {
	acc := n.Accuracy()
	line := fmt.Sprintf("%s%s  %d/%d (%d%%)",
		strings.Repeat("  ", depth), n.Name, acc.Correct, acc.Total, acc.Percentage)

	tr := n.Trend(progress.DefaultWindow)
	if tr.Direction != progress.TrendInsufficient {
		line += "  " + trendArrow(tr.Direction)
	}

	sb.WriteString(line)
	sb.WriteString("\n")

	for _, name := range n.SortedChildNames() {
		writeTopicNode(sb, n.Children[name], depth+1)
	}
}

func trendArrow(d progress.TrendDirection) string {
	switch d {
	case progress.TrendImproving:
		return theme.Correct.Render("↑")
	case progress.TrendDeclining:
		return theme.Incorrect.Render("↓")
	default:
		return theme.Hint.Render("→")
	}
}
