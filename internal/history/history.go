// Package history owns per-question and per-session answer records for
// one quiz, persisting them through a store.Backend after every
// mutation.
package history

// QuestionStats is the lifetime record for a single question:
// chronological answers, most recent last.
type QuestionStats struct {
	History []bool `json:"history"`
}

// SessionLog is the flat chronological log of every answer in the
// current session, regardless of question. It carries its own identity
// and is replaced when a new session starts.
type SessionLog struct {
	SessionID string `json:"session_id"`
	History   []bool `json:"history"`
}
