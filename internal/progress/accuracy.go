package progress

import "math"

// Accuracy summarizes a run of answers.
type Accuracy struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Compute returns the accuracy for a chronological answer history.
// An empty (or nil) history yields the zero value.
func Compute(history []bool) Accuracy {
	var correct int
	for _, ok := range history {
		if ok {
			correct++
		}
	}
	total := len(history)
	if total == 0 {
		return Accuracy{}
	}
	return Accuracy{
		Correct:    correct,
		Total:      total,
		Percentage: int(math.Round(100 * float64(correct) / float64(total))),
	}
}

// Ratio returns correct/total as a float in [0,1], 0 when empty.
func (a Accuracy) Ratio() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}
