package tui

import (
	"fmt"
	"strings"

	"thursday-sniper/internal/domain"
	"thursday-sniper/internal/ml/inference"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prediction message types.
type predictionMsg struct {
	inputs domain.WeeklyInputs
	pred   domain.Prediction
	bias   domain.BiasLabel
}
type predictionErrMsg struct{ err error }

// AppModel is the root Bubble Tea model: the weekly input form on the left,
// the welcome text or latest prediction on the right. One prediction per
// enter press; nothing is retained between predictions except what is shown.
type AppModel struct {
	services Services
	form     FormModel
	result   *predictionMsg
	err      error
	width    int
	height   int
	quitting bool
}

// NewAppModel creates the root application model.
func NewAppModel(svc Services) AppModel {
	return AppModel{
		services: svc,
		form:     NewFormModel(),
	}
}

// Init initializes the form.
func (m AppModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles incoming messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.SetSize(m.width/3, m.height)
		return m, nil

	case predictionMsg:
		result := msg
		m.result = &result
		m.err = nil
		return m, nil

	case predictionErrMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, DefaultKeyMap.Reset):
			m.form = NewFormModel()
			m.form.SetSize(m.width/3, m.height)
			m.result = nil
			m.err = nil
			return m, m.form.Init()

		case key.Matches(msg, DefaultKeyMap.Predict):
			if m.services.ModelErr != nil {
				return m, nil
			}
			inputs, err := m.form.Inputs()
			if err != nil {
				m.err = err
				return m, nil
			}
			return m, m.predictCmd(inputs)
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// View renders the full screen.
func (m AppModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.services.ModelErr != nil {
		sections = append(sections, "", BannerStyle.Render(
			fmt.Sprintf("Model not found: %v. Predictions are disabled.", m.services.ModelErr)))
	}

	left := m.form.View()
	right := m.renderRightPanel()
	gap := strings.Repeat(" ", 4)
	sections = append(sections, "", lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right))

	if m.err != nil {
		sections = append(sections, "", ErrorStyle.Render("Error: "+m.err.Error()))
	}
	sections = append(sections, "", m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates dimensions on the root model.
func (m *AppModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.form.SetSize(w/3, h)
}

// HasResult reports whether a prediction is being displayed (for testing).
func (m AppModel) HasResult() bool { return m.result != nil }

func (m AppModel) renderHeader() string {
	title := TitleStyle.Render("EURUSD Thursday Sniper")
	sub := SubtextStyle.Render("Volatility predictor | gradient boosted trees")
	if m.services.Username != "" {
		sub = SubtextStyle.Render(fmt.Sprintf("Volatility predictor | connected as %s", m.services.Username))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, sub)
}

func (m AppModel) renderRightPanel() string {
	if m.result == nil {
		return m.renderWelcome()
	}

	r := m.result
	var lines []string
	lines = append(lines,
		SectionStyle.Render("Direction Bias"),
		RenderBias(r.bias),
		"",
		SectionStyle.Render("Market Context"),
		fmt.Sprintf("ADR Strength: %.0f Pips", r.inputs.ADR5Day),
		"",
		SectionStyle.Render("Volatility Targets"),
		RenderTargets(r.pred),
	)
	for _, advisory := range Advisories(r.pred) {
		lines = append(lines, advisory)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m AppModel) renderWelcome() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		SectionStyle.Render("Welcome, Sniper"),
		"",
		"Enter Wednesday's closing data on the left and the model",
		"will estimate the Thursday expansion range.",
		"",
		"  1. Wait for the Wednesday candle close.",
		"  2. Input Mon/Tue/Wed range and body.",
		"  3. Press enter to snipe the target.",
	)
}

func (m AppModel) renderHelp() string {
	entries := []key.Binding{
		DefaultKeyMap.Next,
		DefaultKeyMap.Predict,
		DefaultKeyMap.Reset,
		DefaultKeyMap.Quit,
	}
	parts := make([]string, 0, len(entries))
	for _, b := range entries {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return SubtextStyle.Render(strings.Join(parts, "  ·  "))
}

func (m AppModel) predictCmd(inputs domain.WeeklyInputs) tea.Cmd {
	predictor := m.services.Predictor
	return func() tea.Msg {
		if predictor == nil {
			return predictionErrMsg{err: inference.ErrModelUnavailable}
		}
		pred, err := predictor.Predict(inputs)
		if err != nil {
			return predictionErrMsg{err: err}
		}
		return predictionMsg{
			inputs: inputs,
			pred:   pred,
			bias:   inference.ComputeBias(inputs.BodyMon, inputs.BodyTue),
		}
	}
}
