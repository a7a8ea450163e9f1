package progress

// TrendDirection classifies how recent performance compares to prior
// performance over the same window size.
type TrendDirection int

const (
	TrendInsufficient TrendDirection = iota // Not enough history to compare
	TrendImproving
	TrendStable
	TrendDeclining
)

// DefaultWindow is the default comparison window for Improvement.
const DefaultWindow = 5

// trendBand is the percentage-point delta beyond which a trend counts
// as improving or declining rather than stable.
const trendBand = 5

// Trend holds the outcome of an improvement comparison. Delta is the
// raw recent-minus-prior percentage difference and is only meaningful
// when Direction != TrendInsufficient.
type Trend struct {
	Direction TrendDirection
	Delta     int
	Recent    Accuracy
	Prior     Accuracy
}

// Improvement compares the accuracy of the last window entries against
// the window entries preceding them. History shorter than 2*window
// yields TrendInsufficient.
func Improvement(history []bool, window int) Trend {
	if window <= 0 {
		window = DefaultWindow
	}
	if len(history) < 2*window {
		return Trend{Direction: TrendInsufficient}
	}

	recent := Compute(history[len(history)-window:])
	prior := Compute(history[len(history)-2*window : len(history)-window])

	t := Trend{
		Delta:  recent.Percentage - prior.Percentage,
		Recent: recent,
		Prior:  prior,
	}
	switch {
	case t.Delta > trendBand:
		t.Direction = TrendImproving
	case t.Delta < -trendBand:
		t.Direction = TrendDeclining
	default:
		t.Direction = TrendStable
	}
	return t
}

// Label returns the display label for a trend direction.
func (d TrendDirection) Label() string {
	switch d {
	case TrendImproving:
		return "Improving"
	case TrendStable:
		return "Stable"
	case TrendDeclining:
		return "Declining"
	default:
		return "Not enough data"
	}
}
