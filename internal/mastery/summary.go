package mastery

import "math"

// Summary aggregates mastery buckets across a question set.
type Summary struct {
	Total           int
	Attempted       int
	Mastered        int
	MostlyCorrect   int
	MostlyIncorrect int
	Critical        int
	Unattempted     int
}

// Summarize classifies every history in the set. The four attempted
// buckets always sum to Attempted; any classification drift is forced
// into MostlyIncorrect so the reconciliation holds.
func Summarize(histories [][]bool) Summary {
	s := Summary{Total: len(histories)}
	for _, h := range histories {
		switch Classify(h) {
		case StateUnattempted:
			s.Unattempted++
			continue
		case StateMastered:
			s.Mastered++
		case StateMostlyCorrect:
			s.MostlyCorrect++
		case StateMostlyIncorrect:
			s.MostlyIncorrect++
		case StateCritical:
			s.Critical++
		}
		s.Attempted++
	}

	if drift := s.Attempted - (s.Mastered + s.MostlyCorrect + s.MostlyIncorrect + s.Critical); drift != 0 {
		s.MostlyIncorrect += drift
	}
	return s
}

// Coverage is the percentage of attempted questions that are mastered
// or mostly correct. Zero when nothing has been attempted.
func (s Summary) Coverage() int {
	if s.Attempted == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Mastered+s.MostlyCorrect) / float64(s.Attempted)))
}
