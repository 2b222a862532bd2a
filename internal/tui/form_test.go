package tui

import (
	"math"
	"testing"

	"thursday-sniper/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(t *testing.T, m FormModel, s string) FormModel {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestFormDefaults(t *testing.T) {
	m := NewFormModel()
	inputs, err := m.Inputs()
	if err != nil {
		t.Fatalf("parse defaults: %v", err)
	}

	want := domain.DefaultWeeklyInputs()
	if inputs.RangeMon != want.RangeMon || inputs.RangeTue != want.RangeTue || inputs.RangeWed != want.RangeWed {
		t.Fatalf("unexpected default ranges: %+v", inputs)
	}
	if inputs.BodyMon != want.BodyMon || inputs.BodyTue != want.BodyTue || inputs.BodyWedAbs != want.BodyWedAbs {
		t.Fatalf("unexpected default bodies: %+v", inputs)
	}
	if inputs.WeekOfMonth != want.WeekOfMonth {
		t.Fatalf("expected default week %d, got %d", want.WeekOfMonth, inputs.WeekOfMonth)
	}
	if math.Abs(inputs.ADR5Day-want.ADR5Day) > 0.01 {
		t.Fatalf("expected default ADR ~%.2f, got %.2f", want.ADR5Day, inputs.ADR5Day)
	}
}

func TestFormFocusNavigation(t *testing.T) {
	m := NewFormModel()
	if m.Focused() != fieldRangeMon {
		t.Fatalf("expected initial focus on first field, got %d", m.Focused())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.Focused() != fieldBodyMon {
		t.Fatalf("expected focus to advance, got %d", m.Focused())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Focused() != fieldWeek {
		t.Fatalf("expected focus to wrap to week selector, got %d", m.Focused())
	}
}

func TestFormWeekCycling(t *testing.T) {
	m := NewFormModel()
	for m.Focused() != fieldWeek {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	inputs, err := m.Inputs()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if inputs.WeekOfMonth != 3 {
		t.Fatalf("expected week 3 after cycling right from 2, got %d", inputs.WeekOfMonth)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	inputs, _ = m.Inputs()
	if inputs.WeekOfMonth != 1 {
		t.Fatalf("expected week to wrap to 1, got %d", inputs.WeekOfMonth)
	}
}

func TestFormADRTracksRanges(t *testing.T) {
	m := NewFormModel()

	// Appending a digit to Mon Range (60 -> 605) should recompute the ADR.
	m = typeRunes(t, m, "5")
	inputs, err := m.Inputs()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := (605.0 + 70.0 + 55.0) / 3
	if math.Abs(inputs.ADR5Day-want) > 0.01 {
		t.Fatalf("expected ADR to track ranges (~%.2f), got %.2f", want, inputs.ADR5Day)
	}
}

func TestFormADROverrideStopsTracking(t *testing.T) {
	m := NewFormModel()

	for m.Focused() != fieldADR {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	m = typeRunes(t, m, "9")
	if !m.ADRDirty() {
		t.Fatal("expected ADR to be marked dirty after manual edit")
	}
	overridden, _ := m.Inputs()

	// Edits to a range field must no longer touch the ADR.
	for m.Focused() != fieldRangeMon {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	m = typeRunes(t, m, "1")
	after, err := m.Inputs()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if after.ADR5Day != overridden.ADR5Day {
		t.Fatalf("expected overridden ADR %.2f to stick, got %.2f", overridden.ADR5Day, after.ADR5Day)
	}
}

func TestFormInputsRejectsGarbage(t *testing.T) {
	m := NewFormModel()
	m.inputs[fieldBodyTue].SetValue("not a number")
	if _, err := m.Inputs(); err == nil {
		t.Fatal("expected parse error for non-numeric field")
	}
}

func TestFormViewRendersAllFields(t *testing.T) {
	m := NewFormModel()
	m.SetSize(40, 30)
	view := m.View()
	if view == "" {
		t.Fatal("expected non-empty form view")
	}
	for _, label := range fieldLabels {
		if !containsPlain(view, label) {
			t.Errorf("form view missing label %q", label)
		}
	}
}
