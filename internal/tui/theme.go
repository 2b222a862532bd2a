package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Bias colors follow the original dashboard palette.
	BiasBullishStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")).Bold(true)
	BiasBearishStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true)
	BiasNeutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")).Bold(true)

	// General styles
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	SubtextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	// Form styles
	LabelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	FocusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")).Bold(true)
	SectionStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

	// Metric cards
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(0, 2).
			Align(lipgloss.Center)
	TargetCardStyle = CardStyle.
			BorderForeground(lipgloss.Color("#4ADE80"))
	CardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ADE80"))
	CardNoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7F1D1D")).
			Padding(0, 1).
			Bold(true)
)
