package store

import "context"

// MemoryBackend is an in-memory Backend for tests and dry runs.
type MemoryBackend struct {
	blobs  map[string][]byte
	active string
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: make(map[string][]byte)}
}

func key(ns Namespace, quizID string) string {
	return string(ns) + "\x00" + quizID
}

func (b *MemoryBackend) Get(_ context.Context, ns Namespace, quizID string) ([]byte, bool, error) {
	v, ok := b.blobs[key(ns, quizID)]
	return v, ok, nil
}

func (b *MemoryBackend) Set(_ context.Context, ns Namespace, quizID string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	b.blobs[key(ns, quizID)] = cp
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, ns Namespace, quizID string) error {
	delete(b.blobs, key(ns, quizID))
	return nil
}

func (b *MemoryBackend) ActiveQuiz(_ context.Context) (string, error) {
	return b.active, nil
}

func (b *MemoryBackend) SetActiveQuiz(_ context.Context, quizID string) error {
	b.active = quizID
	return nil
}
