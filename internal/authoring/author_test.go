package authoring

import (
	"encoding/json"
	"strings"
	"testing"
)

const draftPayload = `{
	"questions": [
		{
			"questionText": "Capital of France?",
			"options": ["Berlin", "Paris", "Madrid", "Rome"],
			"correctAnswer": "Paris",
			"explanation": "Paris is the French capital.",
			"topic": "Geography",
			"difficulty": 1
		}
	]
}`

func TestFinalizeDraft_AssignsIDsAndValidates(t *testing.T) {
	b, err := finalizeDraft(json.RawMessage(draftPayload), "Geography")
	if err != nil {
		t.Fatalf("finalizeDraft: %v", err)
	}
	if b.Title != "Geography" {
		t.Errorf("title = %q", b.Title)
	}
	if len(b.Questions) != 1 {
		t.Fatalf("got %d questions", len(b.Questions))
	}
	q := b.Questions[0]
	if q.ID != "q_001" {
		t.Errorf("id = %q, want generated q_001", q.ID)
	}
	if q.CorrectAnswer != "Paris" || len(q.Options) != 4 {
		t.Errorf("question not carried through: %+v", q)
	}
}

func TestFinalizeDraft_KeepsModelIDs(t *testing.T) {
	payload := strings.Replace(draftPayload, `"questionText"`, `"id": "custom", "questionText"`, 1)
	b, err := finalizeDraft(json.RawMessage(payload), "Geography")
	if err != nil {
		t.Fatal(err)
	}
	if b.Questions[0].ID != "custom" {
		t.Errorf("id = %q, want custom preserved", b.Questions[0].ID)
	}
}

func TestFinalizeDraft_EmptyRejected(t *testing.T) {
	if _, err := finalizeDraft(json.RawMessage(`{"questions": []}`), "x"); err == nil {
		t.Error("empty draft must fail")
	}
}

func TestFinalizeDraft_BadJSON(t *testing.T) {
	if _, err := finalizeDraft(json.RawMessage(`nonsense`), "x"); err == nil {
		t.Error("invalid JSON must fail")
	}
}

func TestNewDrafterFromEnv_RequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := NewDrafterFromEnv(""); err != ErrNoAPIKey {
		t.Errorf("got %v, want ErrNoAPIKey", err)
	}
}
