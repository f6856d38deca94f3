package analytics

// TrendDirection classifies the month-over-month change in goal attainment.
type TrendDirection string

const (
	Improving TrendDirection = "improving"
	Declining TrendDirection = "declining"
	Stable    TrendDirection = "stable"
)

// TrendThreshold is the attainment change, in percentage points, that must be
// exceeded before a trend is called.
const TrendThreshold = 5

// TrendSignal compares the two most recent months.
type TrendSignal struct {
	Direction TrendDirection `json:"direction"`
	Magnitude int            `json:"magnitude"`
}

// CompareTrend takes monthly stats newest first and compares the first two.
func CompareTrend(monthly []MonthlyStat) TrendSignal {
	if len(monthly) < 2 {
		return TrendSignal{Direction: Stable}
	}
	return ClassifyDelta(monthly[0].GoalPercentage - monthly[1].GoalPercentage)
}

// ClassifyDelta turns a percentage-point delta into a TrendSignal.
func ClassifyDelta(delta int) TrendSignal {
	magnitude := delta
	if magnitude < 0 {
		magnitude = -magnitude
	}
	switch {
	case delta > TrendThreshold:
		return TrendSignal{Direction: Improving, Magnitude: magnitude}
	case delta < -TrendThreshold:
		return TrendSignal{Direction: Declining, Magnitude: magnitude}
	default:
		return TrendSignal{Direction: Stable, Magnitude: magnitude}
	}
}
