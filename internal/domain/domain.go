package domain

// WeeklyInputs holds the manually entered Mon-Wed price action stats used to
// predict Thursday's expansion range. All values are in pips. BodyMon and
// BodyTue are signed (close minus open, positive = bullish candle);
// BodyWedAbs is unsigned by construction.
type WeeklyInputs struct {
	RangeMon    float64
	RangeTue    float64
	RangeWed    float64
	BodyMon     float64
	BodyTue     float64
	BodyWedAbs  float64
	ADR5Day     float64
	WeekOfMonth int
}

// EstimatedADR is the auto-computed ADR fallback: the mean of the three
// daily ranges. The user may override it with the real 5-day ADR.
func (w WeeklyInputs) EstimatedADR() float64 {
	return (w.RangeMon + w.RangeTue + w.RangeWed) / 3
}

// DefaultWeeklyInputs returns the form defaults.
func DefaultWeeklyInputs() WeeklyInputs {
	w := WeeklyInputs{
		RangeMon:    60,
		RangeTue:    70,
		RangeWed:    55,
		BodyMon:     10,
		BodyTue:     -20,
		BodyWedAbs:  30,
		WeekOfMonth: 2,
	}
	w.ADR5Day = w.EstimatedADR()
	return w
}

type BiasLabel string

const (
	BiasBullish BiasLabel = "bullish"
	BiasBearish BiasLabel = "bearish"
	BiasNeutral BiasLabel = "neutral"
)

// Description returns the trading hint shown next to the bias label.
func (b BiasLabel) Description() string {
	switch b {
	case BiasBullish:
		return "Buy Dips"
	case BiasBearish:
		return "Sell Rallies"
	default:
		return "Choppy"
	}
}

// Prediction is the outcome of one model invocation: the predicted Thursday
// range target and the symmetric safe/max band around it.
type Prediction struct {
	TargetPips   float64
	SafePips     float64
	MaxPips      float64
	AnomalyScore float64
	Anomalous    bool
}

// Empirical constants. MedianErrorPips is the model's median absolute error
// on the validation window; the volatility thresholds drive the advisory
// messages. Do not change these without re-running the offline analysis.
const (
	MedianErrorPips      = 18.0
	HighVolThresholdPips = 100.0
	LowVolThresholdPips  = 60.0
)

// WeekOfMonthOptions are the valid values for the week selector.
var WeekOfMonthOptions = []int{1, 2, 3, 4}
