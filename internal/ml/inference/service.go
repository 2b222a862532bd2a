package inference

import (
	"errors"
	"math"

	"thursday-sniper/internal/domain"
	"thursday-sniper/internal/ml/common"
)

// ErrModelUnavailable is returned when the service was started without a
// usable volatility model. It is a terminal condition for the prediction
// feature: there is no per-call recovery, the artifact has to be fixed and
// the process restarted.
var ErrModelUnavailable = errors.New("volatility model unavailable")

// Regressor is the inference entry point of the pre-trained volatility
// model. Implementations must be safe for concurrent use after load.
type Regressor interface {
	PredictValue(sample []float64) float64
}

// AnomalyScorer flags input vectors that look unlike the model's training
// history. Optional.
type AnomalyScorer interface {
	PredictScore(sample []float64) float64
}

type Config struct {
	AnomalyThreshold float64
}

// Service turns raw weekly inputs into a Thursday volatility prediction.
// The model handle is an explicit, read-only dependency threaded in at
// construction; the service itself holds no mutable state.
type Service struct {
	model   Regressor
	anomaly AnomalyScorer
	cfg     Config
}

func NewService(model Regressor, anomaly AnomalyScorer, cfg Config) *Service {
	if cfg.AnomalyThreshold <= 0 || cfg.AnomalyThreshold >= 1 {
		cfg.AnomalyThreshold = 0.7
	}
	return &Service{model: model, anomaly: anomaly, cfg: cfg}
}

// Predict builds the feature vector, invokes the regressor, and undoes the
// training-time log1p transform. The model predicts log(1+pips), so the
// exact inverse is expm1; the ±MedianErrorPips band is symmetric around the
// target by construction.
func (s *Service) Predict(inputs domain.WeeklyInputs) (domain.Prediction, error) {
	if s == nil || s.model == nil {
		return domain.Prediction{}, ErrModelUnavailable
	}

	features := common.FeatureVector(inputs)
	predLog := s.model.PredictValue(features)
	target := math.Expm1(predLog)

	pred := domain.Prediction{
		TargetPips: target,
		SafePips:   target - domain.MedianErrorPips,
		MaxPips:    target + domain.MedianErrorPips,
	}
	if s.anomaly != nil {
		pred.AnomalyScore = common.Clamp01(s.anomaly.PredictScore(features))
		pred.Anomalous = pred.AnomalyScore >= s.cfg.AnomalyThreshold
	}
	return pred, nil
}

// Available reports whether the prediction feature can run.
func (s *Service) Available() bool {
	return s != nil && s.model != nil
}

// ComputeBias classifies expected Thursday direction from the Monday and
// Tuesday signed bodies alone, independent of the model. A flat day (body
// exactly zero) contributes nothing, so one strong candle plus one flat day
// scores the same as two weak candles in the same direction.
func ComputeBias(bodyMon, bodyTue float64) domain.BiasLabel {
	score := 0
	if bodyMon > 0 {
		score++
	}
	if bodyTue > 0 {
		score++
	}
	if bodyMon < 0 {
		score--
	}
	if bodyTue < 0 {
		score--
	}

	switch {
	case score >= 1:
		return domain.BiasBullish
	case score <= -1:
		return domain.BiasBearish
	default:
		return domain.BiasNeutral
	}
}
