package tui

import (
	"fmt"
	"strconv"
	"strings"

	"thursday-sniper/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form field indices. The week selector is not a text input and sits after
// the numeric fields in the focus order.
const (
	fieldRangeMon = iota
	fieldBodyMon
	fieldRangeTue
	fieldBodyTue
	fieldRangeWed
	fieldBodyWed
	fieldADR
	fieldWeek

	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Mon Range (Pips)",
	"Mon Body (Close-Open)",
	"Tue Range (Pips)",
	"Tue Body (Close-Open)",
	"Wed Range (Pips)",
	"Wed Body (Absolute Pips)",
	"ADR (5 Days)",
	"Week of Month",
}

// FormModel is the Bubble Tea model for the weekly data entry form.
type FormModel struct {
	inputs   []textinput.Model
	weekIdx  int
	focus    int
	adrDirty bool
	width    int
}

// NewFormModel creates the form pre-filled with the default weekly inputs.
func NewFormModel() FormModel {
	defaults := domain.DefaultWeeklyInputs()
	values := []float64{
		defaults.RangeMon,
		defaults.BodyMon,
		defaults.RangeTue,
		defaults.BodyTue,
		defaults.RangeWed,
		defaults.BodyWedAbs,
		defaults.ADR5Day,
	}

	inputs := make([]textinput.Model, fieldWeek)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 12
		ti.Width = 14
		ti.Prompt = "> "
		ti.SetValue(formatPips(values[i]))
		inputs[i] = ti
	}
	inputs[fieldRangeMon].Focus()

	weekIdx := 0
	for i, w := range domain.WeekOfMonthOptions {
		if w == defaults.WeekOfMonth {
			weekIdx = i
		}
	}

	return FormModel{inputs: inputs, weekIdx: weekIdx}
}

// Init implements tea.Model-style initialization for the form.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles field navigation, week cycling and typing.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Next):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case key.Matches(keyMsg, DefaultKeyMap.Prev):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	}

	if m.focus == fieldWeek {
		switch keyMsg.String() {
		case "left", "h":
			m.weekIdx = (m.weekIdx + len(domain.WeekOfMonthOptions) - 1) % len(domain.WeekOfMonthOptions)
		case "right", "l", " ":
			m.weekIdx = (m.weekIdx + 1) % len(domain.WeekOfMonthOptions)
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m FormModel) updateFocused(msg tea.Msg) (FormModel, tea.Cmd) {
	if m.focus >= fieldWeek {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	changed := m.inputs[m.focus].Value() != before

	if changed {
		switch m.focus {
		case fieldADR:
			m.adrDirty = true
		case fieldRangeMon, fieldRangeTue, fieldRangeWed:
			m.syncADR()
		}
	}
	return m, cmd
}

// syncADR keeps the ADR field tracking the mean of the three range fields
// until the user overrides it by editing the ADR field directly.
func (m *FormModel) syncADR() {
	if m.adrDirty {
		return
	}
	rMon, err1 := m.fieldValue(fieldRangeMon)
	rTue, err2 := m.fieldValue(fieldRangeTue)
	rWed, err3 := m.fieldValue(fieldRangeWed)
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}
	mean := domain.WeeklyInputs{RangeMon: rMon, RangeTue: rTue, RangeWed: rWed}.EstimatedADR()
	m.inputs[fieldADR].SetValue(formatPips(mean))
}

// Inputs parses the form into a domain value. It fails on the first
// non-numeric field; numeric values need no further validation since every
// downstream formula is total over the reals.
func (m FormModel) Inputs() (domain.WeeklyInputs, error) {
	values := make([]float64, fieldWeek)
	for i := range values {
		v, err := m.fieldValue(i)
		if err != nil {
			return domain.WeeklyInputs{}, fmt.Errorf("%s: enter a number", fieldLabels[i])
		}
		values[i] = v
	}
	return domain.WeeklyInputs{
		RangeMon:    values[fieldRangeMon],
		BodyMon:     values[fieldBodyMon],
		RangeTue:    values[fieldRangeTue],
		BodyTue:     values[fieldBodyTue],
		RangeWed:    values[fieldRangeWed],
		BodyWedAbs:  values[fieldBodyWed],
		ADR5Day:     values[fieldADR],
		WeekOfMonth: domain.WeekOfMonthOptions[m.weekIdx],
	}, nil
}

// View renders the form fields with the focused one highlighted.
func (m FormModel) View() string {
	var lines []string

	lines = append(lines, SectionStyle.Render("Weekly Data Input"))
	lines = append(lines, SubtextStyle.Render("Enter data from Mon-Wed close"))
	lines = append(lines, "")

	for i := 0; i < fieldWeek; i++ {
		lines = append(lines, m.labelFor(i), m.inputs[i].View())
	}

	lines = append(lines, m.labelFor(fieldWeek), m.weekSelectorView())

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SetSize updates the form dimensions.
func (m *FormModel) SetSize(w, _ int) {
	m.width = w
	inputWidth := w - 6
	if inputWidth > 14 {
		inputWidth = 14
	}
	if inputWidth < 6 {
		inputWidth = 6
	}
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}
}

// Focused returns the focused field index (for testing).
func (m FormModel) Focused() int { return m.focus }

// ADRDirty reports whether the user has overridden the auto ADR (for testing).
func (m FormModel) ADRDirty() bool { return m.adrDirty }

func (m *FormModel) setFocus(idx int) {
	if m.focus < fieldWeek {
		m.inputs[m.focus].Blur()
	}
	m.focus = idx
	if m.focus < fieldWeek {
		m.inputs[m.focus].Focus()
	}
}

func (m FormModel) fieldValue(idx int) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(m.inputs[idx].Value()), 64)
}

func (m FormModel) labelFor(idx int) string {
	if idx == m.focus {
		return FocusedLabelStyle.Render(fieldLabels[idx])
	}
	return LabelStyle.Render(fieldLabels[idx])
}

func (m FormModel) weekSelectorView() string {
	var parts []string
	for i, w := range domain.WeekOfMonthOptions {
		cell := fmt.Sprintf(" %d ", w)
		if i == m.weekIdx {
			if m.focus == fieldWeek {
				cell = FocusedLabelStyle.Render("[" + strconv.Itoa(w) + "]")
			} else {
				cell = TitleStyle.Render("[" + strconv.Itoa(w) + "]")
			}
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, " ")
}

// formatPips renders a numeric default without trailing noise; fractional
// values keep two decimals (matching how ADR estimates are shown).
func formatPips(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
