package common

import (
	"fmt"
	"math"

	"thursday-sniper/internal/domain"
)

// FeatureSchemaVersion is bumped whenever FeatureNames changes. Model
// artifacts record the version they were trained against and loading fails
// on a mismatch, so a stale artifact can never be scored with reordered
// features.
const FeatureSchemaVersion = 1

// FeatureNames is the training-time feature schema. The order is a contract
// with the model artifact and must never change without retraining.
var FeatureNames = []string{
	"Range_Monday",
	"Range_Tuesday",
	"Range_Wednesday",
	"Body_Monday",
	"Body_Tuesday",
	"Body_Wednesday",
	"ADR_5_Wednesday",
	"Week_Num_Wednesday",
}

// FeatureVector builds the model input from raw weekly stats. The two signed
// bodies are folded to their absolute values; everything else passes through
// unchanged, in FeatureNames order.
func FeatureVector(w domain.WeeklyInputs) []float64 {
	return []float64{
		w.RangeMon,
		w.RangeTue,
		w.RangeWed,
		math.Abs(w.BodyMon),
		math.Abs(w.BodyTue),
		w.BodyWedAbs,
		w.ADR5Day,
		float64(w.WeekOfMonth),
	}
}

// ValidateSchema checks an artifact's recorded schema against the current
// one. It fails loudly at load time so a feature-order mismatch can never
// silently produce a wrong prediction at inference time.
func ValidateSchema(version int, names []string) error {
	if version != FeatureSchemaVersion {
		return fmt.Errorf("feature schema version mismatch: artifact has v%d, expected v%d", version, FeatureSchemaVersion)
	}
	if len(names) != len(FeatureNames) {
		return fmt.Errorf("feature count mismatch: artifact has %d features, expected %d", len(names), len(FeatureNames))
	}
	for i, name := range names {
		if name != FeatureNames[i] {
			return fmt.Errorf("feature %d mismatch: artifact has %q, expected %q", i, name, FeatureNames[i])
		}
	}
	return nil
}

func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
