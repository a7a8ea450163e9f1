// Package authoring drafts new quiz questions with an LLM. Output is
// schema-constrained JSON that goes through the same validation as a
// hand-written bank, so drafts are loadable (and lintable) as-is.
package authoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/abhisek/quizdrill/internal/bank"
)

// ErrNoAPIKey means the environment does not configure a provider.
var ErrNoAPIKey = errors.New("ANTHROPIC_API_KEY is not set")

// DefaultModel is used unless the caller overrides it.
const DefaultModel = "claude-haiku-4-5-20251001"

const maxDraftTokens = 4096

// Drafter generates draft question banks.
type Drafter struct {
	client *anthropic.Client
	model  string
}

// NewDrafterFromEnv builds a Drafter from ANTHROPIC_API_KEY. An empty
// model selects DefaultModel.
func NewDrafterFromEnv(model string) (*Drafter, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Drafter{client: &client, model: model}, nil
}

const systemPrompt = `You write multiple-choice quiz questions.
Every question has exactly four options including the correct answer,
distractors that are plausible and of similar length to the correct
answer, and a one-sentence explanation. Difficulty is an integer from
1 (very easy) to 5 (very hard).`

// Draft asks the model for count questions on topic and returns them
// as a validated bank.
func (d *Drafter) Draft(ctx context.Context, topic string, count int) (*bank.Bank, error) {
	if count <= 0 {
		count = 5
	}

	prompt := fmt.Sprintf(
		"Write %d multiple-choice questions about %q. Spread difficulty across the 1-5 range. Use %q as the topic label for every question.",
		count, topic, topic)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(d.model),
		MaxTokens: maxDraftTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(prompt),
				},
			},
		},
		OutputConfig: anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{
				Schema: draftSchema(),
			},
		},
	}

	msg, err := d.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("draft questions: %w", err)
	}

	raw, err := extractText(msg)
	if err != nil {
		return nil, err
	}

	draft, err := finalizeDraft(raw, topic)
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// finalizeDraft assigns ids, stamps the title, and pushes the draft
// through the regular bank validation path.
func finalizeDraft(raw json.RawMessage, topic string) (*bank.Bank, error) {
	var payload struct {
		Questions []map[string]any `json:"questions"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if len(payload.Questions) == 0 {
		return nil, errors.New("model returned no questions")
	}

	for i, q := range payload.Questions {
		if id, _ := q["id"].(string); id == "" {
			q["id"] = fmt.Sprintf("q_%03d", i+1)
		}
	}

	full := map[string]any{
		"title":         topic,
		"schemaVersion": bank.SupportedSchemaVersion,
		"questions":     payload.Questions,
	}
	buf, err := json.Marshal(full)
	if err != nil {
		return nil, fmt.Errorf("assemble draft bank: %w", err)
	}

	res, err := bank.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("draft failed bank validation: %w", err)
	}
	return res.Bank, nil
}

func extractText(msg *anthropic.Message) (json.RawMessage, error) {
	for _, block := range msg.Content {
		if block.Type == "text" {
			return json.RawMessage(block.Text), nil
		}
	}
	return nil, errors.New("no text content in model response")
}

// draftSchema is the structured-output schema sent to the model. It is
// deliberately narrower than the bank schema: drafts always use the
// canonical field spellings.
func draftSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"questionText", "options", "correctAnswer", "explanation", "topic", "difficulty"},
					"properties": map[string]any{
						"questionText":  map[string]any{"type": "string"},
						"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 4, "maxItems": 4},
						"correctAnswer": map[string]any{"type": "string"},
						"explanation":   map[string]any{"type": "string"},
						"topic":         map[string]any{"type": "string"},
						"difficulty":    map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
					},
				},
			},
		},
	}
}
