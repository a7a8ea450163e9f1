package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdrill/internal/progress"
	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/screen"
	"github.com/abhisek/quizdrill/internal/ui/components"
	"github.com/abhisek/quizdrill/internal/ui/layout"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

// SummaryScreen shows the session result and lifetime mastery picture
// after a drill ends.
type SummaryScreen struct {
	engine *quiz.Engine
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(engine *quiz.Engine) *SummaryScreen {
	return &SummaryScreen{engine: engine}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	center := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str))
		b.WriteString("\n")
	}

	center(theme.Title.Render("Session complete!"))
	b.WriteString("\n")

	acc := s.engine.SessionAccuracy()
	if acc.Total == 0 {
		center(theme.Subtitle.Render("No questions answered this session."))
	} else {
		center(theme.Body.Render(fmt.Sprintf(
			"Answered: %d        Correct: %d        Accuracy: %d%%",
			acc.Total, acc.Correct, acc.Percentage)))

		tr := s.engine.SessionTrend()
		if tr.Direction != progress.TrendInsufficient {
			line := fmt.Sprintf("Trend: %s (%+d pts vs earlier this session)",
				tr.Direction.Label(), tr.Delta)
			center(trendStyle(tr.Direction).Render(line))
		}
	}
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	center(theme.Subtitle.Render("Mastery"))
	center(divider)
	b.WriteString("\n")

	sum := s.engine.MasterySummary()
	center(theme.Body.Render(fmt.Sprintf(
		"🏆 %d mastered    ✓ %d mostly correct    ✗ %d mostly incorrect    ⚠ %d critical    · %d unattempted",
		sum.Mastered, sum.MostlyCorrect, sum.MostlyIncorrect, sum.Critical, sum.Unattempted)))

	bar := components.NewProgressBar("Coverage", float64(sum.Coverage())/100, true, min(width-8, 50))
	center(bar.View())
	b.WriteString("\n")

	tree := s.engine.TopicTree()
	if weakest := tree.Weakest(); weakest != nil && weakest != tree {
		wa := weakest.Accuracy()
		center(theme.Subtitle.Render("Weakest topic"))
		center(divider)
		b.WriteString("\n")
		center(theme.Body.Render(fmt.Sprintf("%s  (%d/%d correct, %d%%)",
			weakest.Name, wa.Correct, wa.Total, wa.Percentage)))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func trendStyle(d progress.TrendDirection) lipgloss.Style {
	switch d {
	case progress.TrendImproving:
		return theme.Correct
	case progress.TrendDeclining:
		return theme.Incorrect
	default:
		return theme.Hint
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
