package tui

import (
	"errors"
	"strings"
	"testing"

	"thursday-sniper/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// stubPredictor returns a fixed prediction or error.
type stubPredictor struct {
	pred domain.Prediction
	err  error
}

func (s stubPredictor) Predict(domain.WeeklyInputs) (domain.Prediction, error) {
	return s.pred, s.err
}

func testServices() Services {
	return Services{
		Predictor: stubPredictor{pred: domain.Prediction{
			TargetPips: 60,
			SafePips:   42,
			MaxPips:    78,
		}},
	}
}

func containsPlain(s, substr string) bool {
	return strings.Contains(s, substr)
}

func TestAppShowsWelcomeBeforeFirstPrediction(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)

	if m.HasResult() {
		t.Fatal("expected no result initially")
	}
	view := m.View()
	if !containsPlain(view, "Welcome") {
		t.Fatal("expected welcome panel before first prediction")
	}
}

func TestAppPredictFlow(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app := updated.(AppModel)
	if cmd == nil {
		t.Fatal("expected predict command on enter")
	}

	msg := cmd()
	result, ok := msg.(predictionMsg)
	if !ok {
		t.Fatalf("expected predictionMsg, got %T", msg)
	}
	if result.bias != domain.BiasNeutral {
		t.Fatalf("expected neutral bias for default bodies (+10/-20), got %s", result.bias)
	}

	updated, _ = app.Update(msg)
	app = updated.(AppModel)
	if !app.HasResult() {
		t.Fatal("expected result after prediction message")
	}

	view := app.View()
	if !containsPlain(view, "60 Pips") || !containsPlain(view, "42 Pips") || !containsPlain(view, "78 Pips") {
		t.Fatalf("expected pip metrics in view, got:\n%s", view)
	}
	if !containsPlain(view, "NEUTRAL") {
		t.Fatal("expected bias label in view")
	}
}

func TestAppPredictErrorSurfaces(t *testing.T) {
	svc := Services{Predictor: stubPredictor{err: errors.New("boom")}}
	m := NewAppModel(svc)
	m.SetSize(120, 40)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app := updated.(AppModel)
	if cmd == nil {
		t.Fatal("expected predict command")
	}
	updated, _ = app.Update(cmd())
	app = updated.(AppModel)

	if app.HasResult() {
		t.Fatal("expected no result on prediction error")
	}
	if !containsPlain(app.View(), "boom") {
		t.Fatal("expected error in view")
	}
}

func TestAppDegradedModeDisablesPrediction(t *testing.T) {
	svc := Services{ModelErr: errors.New("model artifact missing")}
	m := NewAppModel(svc)
	m.SetSize(120, 40)

	view := m.View()
	if !containsPlain(view, "disabled") {
		t.Fatal("expected degraded-mode banner in view")
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected enter to be a no-op in degraded mode")
	}
	if updated.(AppModel).HasResult() {
		t.Fatal("expected no result in degraded mode")
	}
}

func TestAppInvalidInputBlocksPrediction(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)
	m.form.inputs[fieldRangeMon].SetValue("sixty")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no predict command for invalid input")
	}
	if !containsPlain(updated.(AppModel).View(), "enter a number") {
		t.Fatal("expected parse error in view")
	}
}

func TestAppResetClearsResult(t *testing.T) {
	m := NewAppModel(testServices())
	m.SetSize(120, 40)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated, _ := m.Update(cmd())
	app := updated.(AppModel)
	if !app.HasResult() {
		t.Fatal("expected result before reset")
	}

	updated, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if updated.(AppModel).HasResult() {
		t.Fatal("expected reset to clear result")
	}
}

func TestAppQuit(t *testing.T) {
	m := NewAppModel(testServices())
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if view := updated.(AppModel).View(); !containsPlain(view, "Goodbye") {
		t.Fatal("expected goodbye view when quitting")
	}
}
