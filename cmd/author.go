package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/authoring"
	"github.com/abhisek/quizdrill/internal/ui/components"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

var authorCmd = &cobra.Command{
	Use:   "author",
	Short: "Draft a question bank with Claude",
	Long:  "Author asks Claude to draft a multiple-choice bank on a topic. The draft is validated against the bank schema before it is written, and should be reviewed and linted before use.",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		if topic == "" {
			var err error
			topic, err = promptTopic()
			if err != nil {
				return err
			}
			if topic == "" {
				cmd.Println("Aborted.")
				return nil
			}
		}

		count, _ := cmd.Flags().GetInt("count")
		model, _ := cmd.Flags().GetString("model")

		drafter, err := authoring.NewDrafterFromEnv(model)
		if err != nil {
			return err
		}

		cmd.Printf("Drafting %d questions on %q...\n", count, topic)
		b, err := drafter.Draft(cmd.Context(), topic, count)
		if err != nil {
			return fmt.Errorf("draft: %w", err)
		}

		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			cmd.OutOrStdout().Write(data)
			return nil
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write bank: %w", err)
		}
		cmd.Printf("Wrote %d questions to %s. Review with 'quizdrill lint --bank %s'.\n",
			len(b.Questions), out, out)
		return nil
	},
}

func init() {
	authorCmd.Flags().String("topic", "", "Topic to draft questions about")
	authorCmd.Flags().Int("count", 10, "Number of questions to draft")
	authorCmd.Flags().String("model", authoring.DefaultModel, "Anthropic model to use")
	authorCmd.Flags().String("out", "", "File to write the drafted bank to (default stdout)")
}

// topicPromptModel is a one-field form asking for the draft topic.
type topicPromptModel struct {
	input  components.TextInput
	topic  string
	done   bool
	cancel bool
}

func newTopicPromptModel() topicPromptModel {
	return topicPromptModel{
		input: components.NewTextInput("e.g. European capitals", 80),
	}
}

func (m topicPromptModel) Init() tea.Cmd {
	return m.input.Init()
}

func (m topicPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "ctrl+c", "esc":
			m.cancel = true
			return m, tea.Quit
		case "enter":
			if v := m.input.Value(); v != "" {
				m.topic = v
				m.done = true
				return m, tea.Quit
			}
			m.input.Submit(false)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m topicPromptModel) View() tea.View {
	v := tea.NewView("")
	if m.done || m.cancel {
		return v
	}
	v.SetContent(theme.Body.Render("What should the quiz be about?") + "\n\n" +
		m.input.View() + "\n\n" +
		theme.Hint.Render("Enter to draft, Esc to cancel"))
	return v
}

// promptTopic runs a minimal inline prompt and returns the entered
// topic, or "" if the user cancelled.
func promptTopic() (string, error) {
	p := tea.NewProgram(newTopicPromptModel())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(topicPromptModel)
	if !ok || m.cancel {
		return "", nil
	}
	return m.topic, nil
}
