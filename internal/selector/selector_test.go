package selector

import (
	"math"
	"math/rand"
	"testing"
)

func newTestSelector() *Selector {
	return New(rand.New(rand.NewSource(1)))
}

func TestScore_Empty(t *testing.T) {
	if got := Score(nil); got != 0 {
		t.Errorf("Score(nil) = %f, want 0", got)
	}
}

func TestScore_RecencyWeighting(t *testing.T) {
	// [true, false]: old correct decayed, recent miss full weight.
	got := Score([]bool{true, false})
	want := 0.9 - 1.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score = %f, want %f", got, want)
	}
}

func TestScore_AppendMonotonicity(t *testing.T) {
	base := []bool{true, false, false, true}
	withHit := Score(append(append([]bool{}, base...), true))
	withMiss := Score(append(append([]bool{}, base...), false))
	if withHit <= withMiss {
		t.Errorf("appending correct (%f) must score above appending wrong (%f)", withHit, withMiss)
	}
}

func TestNext_EmptyBank(t *testing.T) {
	s := newTestSelector()
	if _, ok := s.Next(nil, nil); ok {
		t.Error("empty bank must be complete")
	}
}

func TestNext_AllMasteredComplete(t *testing.T) {
	s := newTestSelector()
	histories := map[string][]bool{
		"a": {true, true, true},
		"b": {false, true, true, true},
	}
	if id, ok := s.Next([]string{"a", "b"}, histories); ok {
		t.Errorf("all mastered: got %q, want complete", id)
	}
}

func TestNext_NotCompleteWhileWeakRemains(t *testing.T) {
	s := newTestSelector()
	histories := map[string][]bool{
		"a": {false, false, false},
		"b": {true, true, true},
	}
	id, ok := s.Next([]string{"a", "b"}, histories)
	if !ok {
		t.Fatal("unexpected complete")
	}
	if id != "a" {
		t.Errorf("got %q, want the struggling question a", id)
	}
}

func TestNext_PrefersLowestScore(t *testing.T) {
	s := newTestSelector()
	histories := map[string][]bool{
		"fresh":  nil,                   // score 0
		"shaky":  {true, false, false},  // negative
		"strong": {true, true, false},   // mildly negative but above shaky
	}
	id, ok := s.Next([]string{"fresh", "shaky", "strong"}, histories)
	if !ok || id != "shaky" {
		t.Errorf("got %q, want shaky", id)
	}
}

func TestNext_RepeatAvoidance(t *testing.T) {
	s := newTestSelector()
	histories := map[string][]bool{"a": nil, "b": nil, "c": nil}
	order := []string{"a", "b", "c"}

	prev, ok := s.Next(order, histories)
	if !ok {
		t.Fatal("unexpected complete")
	}
	for i := 0; i < 50; i++ {
		id, ok := s.Next(order, histories)
		if !ok {
			t.Fatal("unexpected complete")
		}
		if id == prev {
			t.Fatalf("round %d: repeated %q with other candidates available", i, id)
		}
		prev = id
	}
}

func TestNext_SingleCandidateRepeats(t *testing.T) {
	s := newTestSelector()
	histories := map[string][]bool{"only": {false}}
	for i := 0; i < 3; i++ {
		id, ok := s.Next([]string{"only"}, histories)
		if !ok || id != "only" {
			t.Fatalf("round %d: got %q ok=%v, want only", i, id, ok)
		}
	}
}

func TestNext_UniformTieBreak(t *testing.T) {
	histories := map[string][]bool{"a": nil, "b": nil}
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		s := New(rand.New(rand.NewSource(int64(i))))
		id, ok := s.Next([]string{"a", "b"}, histories)
		if !ok {
			t.Fatal("unexpected complete")
		}
		counts[id]++
	}
	// Both zero-score candidates should be picked a fair share of the time.
	if counts["a"] < 300 || counts["b"] < 300 {
		t.Errorf("tie-break skewed: %v", counts)
	}
}

func TestNext_EndToEndScenario(t *testing.T) {
	s := newTestSelector()
	order := []string{"a", "b"}
	histories := map[string][]bool{"a": nil, "b": nil}

	if _, ok := s.Next(order, histories); !ok {
		t.Fatal("fresh bank must serve a question")
	}

	// Answer a wrong three times while b becomes mastered.
	histories["a"] = []bool{false, false, false}
	histories["b"] = []bool{true, true, true}
	s.Reset()

	id, ok := s.Next(order, histories)
	if !ok {
		t.Fatal("must not be complete while a question is critical")
	}
	if id != "a" {
		t.Errorf("got %q, want a", id)
	}
}
