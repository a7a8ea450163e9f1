package bank

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultDifficulty is assigned when a question carries no usable
// difficulty code.
const DefaultDifficulty = 3

// Question is one multiple-choice question. Immutable once loaded.
// Options always contains CorrectAnswer; legacy banks that store
// distractors separately are canonicalized during decoding.
type Question struct {
	ID            string   `json:"id"`
	Topics        []string `json:"topics"`
	Difficulty    int      `json:"difficulty"`
	Text          string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// rawQuestion tolerates the field spellings that appear across bank
// generations: question/text for questionText, answer/correct for
// correctAnswer, distractors for options, topic as string or list.
type rawQuestion struct {
	ID            string          `json:"id"`
	Topic         json.RawMessage `json:"topic"`
	Topics        json.RawMessage `json:"topics"`
	Difficulty    json.RawMessage `json:"difficulty"`
	QuestionText  string          `json:"questionText"`
	Question      string          `json:"question"`
	Text          string          `json:"text"`
	Options       []string        `json:"options"`
	Distractors   []string        `json:"distractors"`
	CorrectAnswer string          `json:"correctAnswer"`
	Answer        string          `json:"answer"`
	Correct       string          `json:"correct"`
	Explanation   string          `json:"explanation"`
}

// UnmarshalJSON decodes a question in either the canonical or a legacy
// shape.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw rawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	q.ID = strings.TrimSpace(raw.ID)
	q.Text = firstNonEmpty(raw.QuestionText, raw.Question, raw.Text)
	q.CorrectAnswer = strings.TrimSpace(firstNonEmpty(raw.CorrectAnswer, raw.Answer, raw.Correct))
	q.Explanation = strings.TrimSpace(raw.Explanation)
	q.Difficulty = coerceDifficulty(raw.Difficulty)

	q.Topics = decodeLabels(raw.Topics)
	if len(q.Topics) == 0 {
		q.Topics = decodeLabels(raw.Topic)
	}

	q.Options = canonicalOptions(raw.Options, raw.Distractors, q.CorrectAnswer)
	return nil
}

// canonicalOptions normalizes an option list so it contains the
// correct answer exactly once, with duplicates dropped in order.
// Legacy distractor lists never include the answer, so it is appended.
func canonicalOptions(options, distractors []string, correct string) []string {
	src := options
	if len(src) == 0 {
		src = distractors
	}

	var out []string
	seen := make(map[string]bool)
	for _, o := range src {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	if correct != "" && !seen[correct] {
		out = append(out, correct)
	}
	return out
}

// decodeLabels accepts a JSON string or list of strings and returns
// the trimmed non-empty labels.
func decodeLabels(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if s := strings.TrimSpace(one); s != "" {
			return []string{s}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil
	}
	var out []string
	for _, l := range many {
		if s := strings.TrimSpace(l); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// difficultyNames maps legacy difficulty labels to the 1-5 scale.
var difficultyNames = map[string]int{
	"very easy": 1,
	"very_easy": 1,
	"easy":      2,
	"medium":    3,
	"hard":      4,
	"very hard": 5,
	"very_hard": 5,
}

// coerceDifficulty accepts a number, numeric string, or a name and
// clamps the result to 1..5, defaulting to DefaultDifficulty.
func coerceDifficulty(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultDifficulty
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return clampDifficulty(n)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return DefaultDifficulty
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		return clampDifficulty(n)
	}
	if n, ok := difficultyNames[s]; ok {
		return n
	}
	return DefaultDifficulty
}

func clampDifficulty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
