package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/quizdrill/internal/store"
)

// Store holds the loaded stats for one quiz and writes every mutation
// back through the backend.
type Store struct {
	backend store.Backend
	quizID  string
	stats   map[string]*QuestionStats
	session SessionLog
}

// Load reads the lifetime stats for quizID and starts a fresh session
// log, persisting its empty state. Corrupt or missing stored data
// degrades to empty state, never an error. Every id in questionIDs is
// guaranteed a (possibly empty) record afterwards, so selection can
// run against complete data.
func Load(ctx context.Context, backend store.Backend, quizID string, questionIDs []string) (*Store, error) {
	s, err := load(ctx, backend, quizID, questionIDs)
	if err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadReadOnly reads lifetime stats without touching the stored
// session log, for commands that only display stats.
func LoadReadOnly(ctx context.Context, backend store.Backend, quizID string, questionIDs []string) (*Store, error) {
	return load(ctx, backend, quizID, questionIDs)
}

func load(ctx context.Context, backend store.Backend, quizID string, questionIDs []string) (*Store, error) {
	s := &Store{
		backend: backend,
		quizID:  quizID,
		stats:   make(map[string]*QuestionStats),
	}

	raw, ok, err := backend.Get(ctx, store.NamespaceLifetime, quizID)
	if err != nil {
		return nil, fmt.Errorf("load lifetime stats: %w", err)
	}
	if ok {
		var stored map[string]*QuestionStats
		if err := json.Unmarshal(raw, &stored); err == nil {
			for id, qs := range stored {
				if qs != nil {
					s.stats[id] = qs
				}
			}
		}
		// Unparseable blobs fall through to empty stats.
	}

	for _, id := range questionIDs {
		if _, ok := s.stats[id]; !ok {
			s.stats[id] = &QuestionStats{}
		}
	}

	s.session = SessionLog{SessionID: uuid.New().String()}
	return s, nil
}

// QuizID returns the quiz this store is bound to.
func (s *Store) QuizID() string {
	return s.quizID
}

// SessionID returns the current session's identity.
func (s *Store) SessionID() string {
	return s.session.SessionID
}

// History returns the chronological history for a question id. Unknown
// ids yield nil.
func (s *Store) History(id string) []bool {
	if qs, ok := s.stats[id]; ok {
		return qs.History
	}
	return nil
}

// Histories returns all per-question histories keyed by question id.
func (s *Store) Histories() map[string][]bool {
	out := make(map[string][]bool, len(s.stats))
	for id, qs := range s.stats {
		out[id] = qs.History
	}
	return out
}

// SessionHistory returns the flat answer log of the current session.
func (s *Store) SessionHistory() []bool {
	return s.session.History
}

// RecordAnswer appends one answer to the question's lifetime history
// and to the session log, persisting both. A failed write rolls the
// in-memory append back so state never drifts from the backend.
func (s *Store) RecordAnswer(ctx context.Context, id string, correct bool) error {
	qs, ok := s.stats[id]
	if !ok {
		qs = &QuestionStats{}
		s.stats[id] = qs
	}

	qs.History = append(qs.History, correct)
	if err := s.saveLifetime(ctx); err != nil {
		qs.History = qs.History[:len(qs.History)-1]
		return err
	}

	s.session.History = append(s.session.History, correct)
	if err := s.saveSession(ctx); err != nil {
		s.session.History = s.session.History[:len(s.session.History)-1]
		return err
	}
	return nil
}

// Reset wipes both namespaces for this quiz and clears in-memory
// state, keeping empty records for the known question ids. A new
// session identity is issued.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.backend.Delete(ctx, store.NamespaceLifetime, s.quizID); err != nil {
		return fmt.Errorf("reset lifetime stats: %w", err)
	}
	if err := s.backend.Delete(ctx, store.NamespaceSession, s.quizID); err != nil {
		return fmt.Errorf("reset session stats: %w", err)
	}

	for id := range s.stats {
		s.stats[id] = &QuestionStats{}
	}
	s.session = SessionLog{SessionID: uuid.New().String()}
	return s.saveSession(ctx)
}

func (s *Store) saveLifetime(ctx context.Context) error {
	raw, err := json.Marshal(s.stats)
	if err != nil {
		return fmt.Errorf("marshal lifetime stats: %w", err)
	}
	if err := s.backend.Set(ctx, store.NamespaceLifetime, s.quizID, raw); err != nil {
		return fmt.Errorf("save lifetime stats: %w", err)
	}
	return nil
}

func (s *Store) saveSession(ctx context.Context) error {
	raw, err := json.Marshal(s.session)
	if err != nil {
		return fmt.Errorf("marshal session log: %w", err)
	}
	if err := s.backend.Set(ctx, store.NamespaceSession, s.quizID, raw); err != nil {
		return fmt.Errorf("save session log: %w", err)
	}
	return nil
}
