// Package quiz ties a loaded bank to its stats and drives one
// practice loop: serve the weakest question, record the answer,
// repeat until everything is mastered.
package quiz

import (
	"context"
	"math/rand"

	"github.com/abhisek/quizdrill/internal/bank"
	"github.com/abhisek/quizdrill/internal/history"
	"github.com/abhisek/quizdrill/internal/mastery"
	"github.com/abhisek/quizdrill/internal/progress"
	"github.com/abhisek/quizdrill/internal/selector"
	"github.com/abhisek/quizdrill/internal/topics"
)

// Engine owns the pure core (selector, classifier, aggregator) and the
// stats store for one quiz.
type Engine struct {
	bank  *bank.Bank
	stats *history.Store
	sel   *selector.Selector
}

// NewEngine creates an Engine. rng seeds the selector's tie-breaking;
// nil gets a default source.
func NewEngine(b *bank.Bank, stats *history.Store, rng *rand.Rand) *Engine {
	return &Engine{bank: b, stats: stats, sel: selector.New(rng)}
}

// Bank returns the engine's question bank.
func (e *Engine) Bank() *bank.Bank {
	return e.bank
}

// NextQuestion picks the next question to show. ok is false when every
// question is mastered (or the bank is empty): the quiz is complete.
func (e *Engine) NextQuestion() (q *bank.Question, ok bool) {
	id, ok := e.sel.Next(e.bank.QuestionIDs(), e.stats.Histories())
	if !ok {
		return nil, false
	}
	return e.bank.ByID(id), true
}

// SubmitAnswer grades choice against the question, records the result
// in lifetime and session history, and persists.
func (e *Engine) SubmitAnswer(ctx context.Context, q *bank.Question, choice string) (bool, error) {
	correct := choice == q.CorrectAnswer
	if err := e.stats.RecordAnswer(ctx, q.ID, correct); err != nil {
		return correct, err
	}
	return correct, nil
}

// MasterySummary aggregates bucket counts over the whole bank.
func (e *Engine) MasterySummary() mastery.Summary {
	histories := make([][]bool, 0, len(e.bank.Questions))
	for _, id := range e.bank.QuestionIDs() {
		histories = append(histories, e.stats.History(id))
	}
	return mastery.Summarize(histories)
}

// TopicTree aggregates lifetime histories into the topic tree.
func (e *Engine) TopicTree() *topics.Node {
	contribs := make([]topics.Contribution, 0, len(e.bank.Questions))
	for i := range e.bank.Questions {
		q := &e.bank.Questions[i]
		contribs = append(contribs, topics.Contribution{
			Paths:   topics.Paths(q.Topics),
			History: e.stats.History(q.ID),
		})
	}
	return topics.Build(contribs)
}

// QuestionState returns the mastery bucket for one question.
func (e *Engine) QuestionState(id string) mastery.State {
	return mastery.Classify(e.stats.History(id))
}

// SessionAccuracy summarizes the current session's flat answer log.
func (e *Engine) SessionAccuracy() progress.Accuracy {
	return progress.Compute(e.stats.SessionHistory())
}

// SessionTrend compares the session's recent answers to the ones
// before them.
func (e *Engine) SessionTrend() progress.Trend {
	return progress.Improvement(e.stats.SessionHistory(), progress.DefaultWindow)
}

// Reset wipes this quiz's stats and clears selector state.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.stats.Reset(ctx); err != nil {
		return err
	}
	e.sel.Reset()
	return nil
}
