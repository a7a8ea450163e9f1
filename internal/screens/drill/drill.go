package drill

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdrill/internal/bank"
	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/router"
	"github.com/abhisek/quizdrill/internal/screen"
	"github.com/abhisek/quizdrill/internal/screens/summary"
	"github.com/abhisek/quizdrill/internal/ui/components"
	"github.com/abhisek/quizdrill/internal/ui/layout"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

// DrillScreen implements screen.Screen for the practice loop. It serves
// questions from the engine one at a time, shows feedback after each
// answer, and hands off to the summary screen when the learner quits or
// masters the whole bank.
type DrillScreen struct {
	engine *quiz.Engine

	current  *bank.Question
	mc       components.MultiChoice
	feedback bool
	correct  bool
	complete bool
	errMsg   string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New creates a new DrillScreen driving the given engine.
func New(engine *quiz.Engine) *DrillScreen {
	return &DrillScreen{engine: engine}
}

func (s *DrillScreen) Init() tea.Cmd {
	s.serveNext()
	return nil
}

func (s *DrillScreen) Title() string {
	return "Practice"
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	if s.complete {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Summary"},
		}
	}
	if s.feedback {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Esc", Description: "Finish"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Select"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Finish"},
	}
}

// serveNext asks the engine for the next weakest question and rebuilds
// the choice component around it.
func (s *DrillScreen) serveNext() {
	q, ok := s.engine.NextQuestion()
	if !ok {
		s.current = nil
		s.complete = true
		return
	}

	correctIdx := 0
	for i, opt := range q.Options {
		if opt == q.CorrectAnswer {
			correctIdx = i
			break
		}
	}

	s.current = q
	s.mc = components.NewMultiChoice(q.Text, q.Options, correctIdx)
	s.feedback = false
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if key == "esc" {
		return s, s.finish()
	}

	if s.complete {
		if key == "enter" {
			return s, s.finish()
		}
		return s, nil
	}

	if s.feedback {
		if key == "enter" {
			s.serveNext()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)

	if s.mc.Submitted {
		correct, err := s.engine.SubmitAnswer(context.Background(), s.current, s.mc.Chosen())
		if err != nil {
			s.errMsg = err.Error()
		}
		s.correct = correct
		s.feedback = true
	}

	return s, cmd
}

// finish replaces the drill screen with the session summary.
func (s *DrillScreen) finish() tea.Cmd {
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(s.engine)}
	}
}

func (s *DrillScreen) View(width, height int) string {
	if s.complete {
		return s.renderComplete(width, height)
	}
	if s.current == nil {
		return ""
	}

	var b strings.Builder

	state := s.engine.QuestionState(s.current.ID)
	meta := fmt.Sprintf("%s %s   •   %s   •   difficulty %d/5",
		state.Icon(), state.Label(),
		strings.Join(s.current.Topics, ", "),
		s.current.Difficulty)
	b.WriteString(theme.Hint.Render(meta))
	b.WriteString("\n\n")

	b.WriteString(s.mc.View())

	if s.feedback {
		b.WriteString("\n")
		if s.correct {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite.") +
				theme.Body.Render("  The answer is "+s.current.CorrectAnswer+"."))
		}
		if s.current.Explanation != "" {
			b.WriteString("\n\n")
			b.WriteString(theme.Hint.Render(s.current.Explanation))
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render("Save failed: " + s.errMsg))
	}

	card := lipgloss.NewStyle().
		Padding(1, 3).
		Width(min(width-4, 76)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *DrillScreen) renderComplete(width, height int) string {
	msg := theme.Title.Render("All questions mastered!") + "\n\n" +
		theme.Subtitle.Render("Nothing left to drill in this quiz.\nPress Enter to see your session summary.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
