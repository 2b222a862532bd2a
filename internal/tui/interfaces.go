package tui

import "thursday-sniper/internal/domain"

// Predictor runs the volatility model over one set of weekly inputs.
type Predictor interface {
	Predict(inputs domain.WeeklyInputs) (domain.Prediction, error)
}

// Services bundles the dependencies injected into the TUI.
type Services struct {
	Predictor Predictor

	// ModelErr carries the startup model-load failure, if any. When set the
	// prediction feature is disabled for the lifetime of the session and the
	// form renders a terminal error banner instead.
	ModelErr error

	// Username identifies the SSH user, empty for local sessions.
	Username string
}
