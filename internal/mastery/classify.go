package mastery

import "github.com/abhisek/quizdrill/internal/progress"

const (
	// DefaultStreak is the number of most-recent consecutive correct
	// answers required to consider a question mastered. The same streak
	// length of consecutive wrong answers marks a question critical.
	DefaultStreak = 3

	// DefaultThreshold splits mostly-correct from mostly-incorrect on
	// the overall correct ratio.
	DefaultThreshold = 0.6
)

// State is the mastery bucket for a single question.
type State int

const (
	StateUnattempted State = iota // No answers recorded yet
	StateCritical                 // Recent streak of misses, or never answered correctly
	StateMostlyIncorrect
	StateMostlyCorrect
	StateMastered // Last DefaultStreak answers all correct
)

// Classify buckets a question by its chronological answer history
// (most recent last).
func Classify(history []bool) State {
	if len(history) == 0 {
		return StateUnattempted
	}
	if streakOf(history, true, DefaultStreak) {
		return StateMastered
	}
	if streakOf(history, false, DefaultStreak) || progress.Compute(history).Correct == 0 {
		return StateCritical
	}
	if progress.Compute(history).Ratio() >= DefaultThreshold {
		return StateMostlyCorrect
	}
	return StateMostlyIncorrect
}

// IsMastered reports whether the last DefaultStreak entries exist and
// are all correct.
func IsMastered(history []bool) bool {
	return streakOf(history, true, DefaultStreak)
}

// streakOf reports whether the last n entries exist and all equal want.
func streakOf(history []bool, want bool, n int) bool {
	if len(history) < n {
		return false
	}
	for _, v := range history[len(history)-n:] {
		if v != want {
			return false
		}
	}
	return true
}

// Label returns the display label for a state.
func (s State) Label() string {
	switch s {
	case StateMastered:
		return "Mastered"
	case StateMostlyCorrect:
		return "Mostly correct"
	case StateMostlyIncorrect:
		return "Mostly incorrect"
	case StateCritical:
		return "Critical"
	case StateUnattempted:
		return "Unattempted"
	default:
		return "Unknown"
	}
}

// Icon returns the display icon for a state.
func (s State) Icon() string {
	switch s {
	case StateMastered:
		return "✅"
	case StateMostlyCorrect:
		return "🟢"
	case StateMostlyIncorrect:
		return "🟠"
	case StateCritical:
		return "🔴"
	case StateUnattempted:
		return "⚪"
	default:
		return "?"
	}
}
