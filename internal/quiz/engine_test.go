package quiz

import (
	"context"
	"math/rand"
	"testing"

	"github.com/abhisek/quizdrill/internal/bank"
	"github.com/abhisek/quizdrill/internal/history"
	"github.com/abhisek/quizdrill/internal/mastery"
	"github.com/abhisek/quizdrill/internal/store"
)

func testBank() *bank.Bank {
	return &bank.Bank{
		Title: "Capitals",
		Questions: []bank.Question{
			{ID: "q1", Topics: []string{"Geo - Europe"}, Text: "Capital of France?",
				Options: []string{"Berlin", "Paris"}, CorrectAnswer: "Paris"},
			{ID: "q2", Topics: []string{"Geo - Asia"}, Text: "Capital of Japan?",
				Options: []string{"Tokyo", "Kyoto"}, CorrectAnswer: "Tokyo"},
		},
	}
}

func newTestEngine(t *testing.T) (*Engine, *history.Store) {
	t.Helper()
	b := testBank()
	stats, err := history.Load(context.Background(), store.NewMemoryBackend(), "capitals", b.QuestionIDs())
	if err != nil {
		t.Fatal(err)
	}
	return NewEngine(b, stats, rand.New(rand.NewSource(3))), stats
}

func TestEngine_AnswerLoop(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	q, ok := e.NextQuestion()
	if !ok || q == nil {
		t.Fatal("fresh bank must serve a question")
	}

	correct, err := e.SubmitAnswer(ctx, q, q.CorrectAnswer)
	if err != nil || !correct {
		t.Fatalf("correct=%v err=%v, want graded correct", correct, err)
	}

	wrong, err := e.SubmitAnswer(ctx, q, "definitely not")
	if err != nil || wrong {
		t.Fatalf("correct=%v err=%v, want graded wrong", wrong, err)
	}

	acc := e.SessionAccuracy()
	if acc.Total != 2 || acc.Correct != 1 {
		t.Errorf("session accuracy = %+v, want 1/2", acc)
	}
}

func TestEngine_CompleteWhenAllMastered(t *testing.T) {
	e, stats := newTestEngine(t)
	ctx := context.Background()

	for _, id := range []string{"q1", "q2"} {
		for i := 0; i < mastery.DefaultStreak; i++ {
			if err := stats.RecordAnswer(ctx, id, true); err != nil {
				t.Fatal(err)
			}
		}
	}

	if q, ok := e.NextQuestion(); ok {
		t.Errorf("got question %v, want complete", q.ID)
	}
	s := e.MasterySummary()
	if s.Mastered != 2 || s.Coverage() != 100 {
		t.Errorf("summary = %+v, want 2 mastered", s)
	}
}

func TestEngine_TopicTree(t *testing.T) {
	e, stats := newTestEngine(t)
	ctx := context.Background()

	stats.RecordAnswer(ctx, "q1", false)
	stats.RecordAnswer(ctx, "q2", true)

	root := e.TopicTree()
	geo := root.Children["Geo"]
	if geo == nil {
		t.Fatal("missing Geo node")
	}
	if len(geo.History) != 2 {
		t.Errorf("Geo history len = %d, want 2 (both questions share the prefix)", len(geo.History))
	}
	weakest := root.Weakest()
	if weakest == nil || weakest.Name != "Europe" {
		t.Errorf("weakest = %v, want Europe (the missed question)", weakest)
	}
}

func TestEngine_Reset(t *testing.T) {
	e, stats := newTestEngine(t)
	ctx := context.Background()

	stats.RecordAnswer(ctx, "q1", true)
	if err := e.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if s := e.MasterySummary(); s.Attempted != 0 {
		t.Errorf("after reset attempted = %d, want 0", s.Attempted)
	}
}
