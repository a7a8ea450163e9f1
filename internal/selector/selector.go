package selector

import (
	"math"
	"math/rand"

	"github.com/abhisek/quizdrill/internal/mastery"
)

// Decay is the per-step multiplier discounting older answers in the
// weighted recency score. The most recent answer weighs 1.0.
const Decay = 0.9

// Selector picks the next question to serve. It holds the single piece
// of scheduling state, the last served id, plus a rand source so
// tie-breaking is reproducible in tests.
type Selector struct {
	lastServed string
	rng        *rand.Rand
}

// New creates a Selector. A nil rng falls back to a time-free default
// source; callers that care about determinism pass their own.
func New(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Selector{rng: rng}
}

// LastServed returns the id of the most recently served question, or
// "" if none has been served yet.
func (s *Selector) LastServed() string {
	return s.lastServed
}

// Score computes the weighted recency score for a history: each answer
// contributes +1 (correct) or -1 (wrong) discounted by Decay per step
// of age. Empty history scores 0. Lower means weaker.
func Score(history []bool) float64 {
	var score float64
	n := len(history)
	for i, correct := range history {
		w := math.Pow(Decay, float64(n-1-i))
		if correct {
			score += w
		} else {
			score -= w
		}
	}
	return score
}

// Next returns the id of the weakest non-mastered question. The second
// return is false when the bank is empty or every question is mastered
// (the session is complete).
//
// The previously served question is excluded whenever more than one
// candidate remains, so the learner never sees the same question twice
// in a row unless it is the only one left.
func (s *Selector) Next(order []string, histories map[string][]bool) (string, bool) {
	var pool []string
	for _, id := range order {
		if !mastery.IsMastered(histories[id]) {
			pool = append(pool, id)
		}
	}
	if len(pool) == 0 {
		return "", false
	}

	if len(pool) > 1 && s.lastServed != "" {
		trimmed := pool[:0:0]
		for _, id := range pool {
			if id != s.lastServed {
				trimmed = append(trimmed, id)
			}
		}
		if len(trimmed) > 0 {
			pool = trimmed
		}
	}

	best := []string{pool[0]}
	bestScore := Score(histories[pool[0]])
	for _, id := range pool[1:] {
		sc := Score(histories[id])
		switch {
		case sc < bestScore:
			best = best[:1]
			best[0] = id
			bestScore = sc
		case sc == bestScore:
			best = append(best, id)
		}
	}

	chosen := best[s.rng.Intn(len(best))]
	s.lastServed = chosen
	return chosen, true
}

// Reset clears the last-served state, e.g. after a stats wipe.
func (s *Selector) Reset() {
	s.lastServed = ""
}
