package bank

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decodeQuestion(t *testing.T, raw string) Question {
	t.Helper()
	var q Question
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return q
}

func TestUnmarshal_Canonical(t *testing.T) {
	q := decodeQuestion(t, `{
		"id": "q1",
		"topics": ["Geography > Capitals"],
		"difficulty": 2,
		"questionText": "Capital of France?",
		"options": ["Berlin", "Paris", "Madrid"],
		"correctAnswer": "Paris",
		"explanation": "Paris has been the capital since 987."
	}`)

	if q.ID != "q1" || q.Text != "Capital of France?" || q.CorrectAnswer != "Paris" {
		t.Errorf("core fields wrong: %+v", q)
	}
	if q.Difficulty != 2 {
		t.Errorf("difficulty = %d, want 2", q.Difficulty)
	}
	if !reflect.DeepEqual(q.Options, []string{"Berlin", "Paris", "Madrid"}) {
		t.Errorf("options = %v", q.Options)
	}
}

func TestUnmarshal_LegacyFields(t *testing.T) {
	q := decodeQuestion(t, `{
		"id": "q2",
		"topic": "History",
		"question": "Year WW2 ended?",
		"distractors": ["1943", "1944"],
		"answer": "1945"
	}`)

	if q.Text != "Year WW2 ended?" || q.CorrectAnswer != "1945" {
		t.Errorf("legacy spellings not picked up: %+v", q)
	}
	// Distractors never include the answer; canonical options must.
	if !reflect.DeepEqual(q.Options, []string{"1943", "1944", "1945"}) {
		t.Errorf("options = %v, want answer appended", q.Options)
	}
	if !reflect.DeepEqual(q.Topics, []string{"History"}) {
		t.Errorf("topics = %v", q.Topics)
	}
}

func TestUnmarshal_DuplicateOptionsDropped(t *testing.T) {
	q := decodeQuestion(t, `{
		"id": "q3",
		"options": ["A", "A", "B", "B"],
		"correctAnswer": "B"
	}`)
	if !reflect.DeepEqual(q.Options, []string{"A", "B"}) {
		t.Errorf("options = %v, want deduplicated", q.Options)
	}
}

func TestUnmarshal_TopicList(t *testing.T) {
	q := decodeQuestion(t, `{"id": "q4", "topics": ["Math", " ", "Logic"]}`)
	if !reflect.DeepEqual(q.Topics, []string{"Math", "Logic"}) {
		t.Errorf("topics = %v", q.Topics)
	}
}

func TestCoerceDifficulty(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`3`, 3},
		{`9`, 5},
		{`0`, 1},
		{`"4"`, 4},
		{`"easy"`, 2},
		{`"Very Hard"`, 5},
		{`"nonsense"`, DefaultDifficulty},
		{`null`, DefaultDifficulty},
	}
	for _, tc := range cases {
		got := coerceDifficulty(json.RawMessage(tc.raw))
		if got != tc.want {
			t.Errorf("coerceDifficulty(%s) = %d, want %d", tc.raw, got, tc.want)
		}
	}
	if got := coerceDifficulty(nil); got != DefaultDifficulty {
		t.Errorf("missing difficulty = %d, want default", got)
	}
}
