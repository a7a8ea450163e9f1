package history

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/quizdrill/internal/store"
)

func TestLoad_FreshQuiz(t *testing.T) {
	ctx := context.Background()
	s, err := Load(ctx, store.NewMemoryBackend(), "capitals", []string{"q1", "q2"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	hs := s.Histories()
	if len(hs) != 2 {
		t.Fatalf("got %d records, want 2", len(hs))
	}
	for id, h := range hs {
		if len(h) != 0 {
			t.Errorf("question %s: fresh history not empty", id)
		}
	}
	if s.SessionID() == "" {
		t.Error("expected a session id")
	}
}

func TestRecordAnswer_PersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()

	s, err := Load(ctx, backend, "capitals", []string{"q1"})
	if err != nil {
		t.Fatal(err)
	}
	s.RecordAnswer(ctx, "q1", true)
	s.RecordAnswer(ctx, "q1", false)

	reloaded, err := Load(ctx, backend, "capitals", []string{"q1"})
	if err != nil {
		t.Fatal(err)
	}
	h := reloaded.History("q1")
	if len(h) != 2 || h[0] != true || h[1] != false {
		t.Errorf("reloaded history = %v, want [true false]", h)
	}
}

func TestLoad_NewSessionClearsSessionLog(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()

	s, _ := Load(ctx, backend, "capitals", []string{"q1"})
	s.RecordAnswer(ctx, "q1", true)
	firstSession := s.SessionID()

	reloaded, _ := Load(ctx, backend, "capitals", []string{"q1"})
	if len(reloaded.SessionHistory()) != 0 {
		t.Error("new session must start with an empty log")
	}
	if reloaded.SessionID() == firstSession {
		t.Error("new session must get a new id")
	}
	// Lifetime history survives the session boundary.
	if len(reloaded.History("q1")) != 1 {
		t.Error("lifetime history lost across sessions")
	}
}

func TestLoad_CorruptBlobTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	backend.Set(ctx, store.NamespaceLifetime, "capitals", []byte("{not json"))

	s, err := Load(ctx, backend, "capitals", []string{"q1"})
	if err != nil {
		t.Fatalf("corrupt blob must not fail Load: %v", err)
	}
	if len(s.History("q1")) != 0 {
		t.Error("corrupt blob should degrade to empty history")
	}
}

func TestLoad_MergesNewBankQuestions(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()

	s, _ := Load(ctx, backend, "capitals", []string{"q1"})
	s.RecordAnswer(ctx, "q1", true)

	// Bank grew a question since last run.
	s2, _ := Load(ctx, backend, "capitals", []string{"q1", "q2"})
	if len(s2.History("q1")) != 1 {
		t.Error("existing history lost on merge")
	}
	if s2.History("q2") == nil && len(s2.Histories()) != 2 {
		t.Error("new question did not get a record")
	}
}

func TestReset_ScopedToQuiz(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()

	capitals, _ := Load(ctx, backend, "capitals", []string{"q1"})
	capitals.RecordAnswer(ctx, "q1", true)
	biology, _ := Load(ctx, backend, "biology", []string{"b1"})
	biology.RecordAnswer(ctx, "b1", false)

	if err := capitals.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(capitals.History("q1")) != 0 {
		t.Error("reset quiz still has history")
	}

	// The other quiz's namespace is untouched.
	reloaded, _ := Load(ctx, backend, "biology", []string{"b1"})
	if len(reloaded.History("b1")) != 1 {
		t.Error("reset of one quiz wiped another quiz's stats")
	}
}

func TestLoadReadOnly_LeavesSessionBlobAlone(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()

	s, _ := Load(ctx, backend, "capitals", []string{"q1"})
	s.RecordAnswer(ctx, "q1", true)
	before, ok, _ := backend.Get(ctx, store.NamespaceSession, "capitals")
	if !ok {
		t.Fatal("expected a stored session log")
	}

	viewer, err := LoadReadOnly(ctx, backend, "capitals", []string{"q1"})
	if err != nil {
		t.Fatalf("LoadReadOnly: %v", err)
	}
	if len(viewer.History("q1")) != 1 {
		t.Error("read-only load lost lifetime history")
	}

	after, _, _ := backend.Get(ctx, store.NamespaceSession, "capitals")
	if string(after) != string(before) {
		t.Errorf("read-only load rewrote the session log: %s -> %s", before, after)
	}
}

// failingBackend wraps a MemoryBackend and fails Set after a number of
// successful calls.
type failingBackend struct {
	*store.MemoryBackend
	setsLeft int
}

func (b *failingBackend) Set(ctx context.Context, ns store.Namespace, quizID string, value []byte) error {
	if b.setsLeft <= 0 {
		return errors.New("disk full")
	}
	b.setsLeft--
	return b.MemoryBackend.Set(ctx, ns, quizID, value)
}

func TestRecordAnswer_RollsBackOnSaveFailure(t *testing.T) {
	ctx := context.Background()

	// One Set budget covers Load's session write; the lifetime save
	// inside RecordAnswer fails.
	backend := &failingBackend{MemoryBackend: store.NewMemoryBackend(), setsLeft: 1}
	s, err := Load(ctx, backend, "capitals", []string{"q1"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := s.RecordAnswer(ctx, "q1", true); err == nil {
		t.Fatal("expected RecordAnswer to surface the save failure")
	}
	if len(s.History("q1")) != 0 {
		t.Error("failed lifetime save left the answer in memory")
	}
	if len(s.SessionHistory()) != 0 {
		t.Error("failed lifetime save left the answer in the session log")
	}
}

func TestRecordAnswer_RollsBackSessionOnSaveFailure(t *testing.T) {
	ctx := context.Background()

	// Two Sets succeed (Load's session write + the lifetime save); the
	// session save inside RecordAnswer fails.
	backend := &failingBackend{MemoryBackend: store.NewMemoryBackend(), setsLeft: 2}
	s, err := Load(ctx, backend, "capitals", []string{"q1"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := s.RecordAnswer(ctx, "q1", true); err == nil {
		t.Fatal("expected RecordAnswer to surface the save failure")
	}
	// The lifetime write landed, so the lifetime append stays; only
	// the unsaved session append is undone.
	if len(s.History("q1")) != 1 {
		t.Errorf("lifetime history = %v, want the persisted answer kept", s.History("q1"))
	}
	if len(s.SessionHistory()) != 0 {
		t.Error("failed session save left the answer in the session log")
	}
}
