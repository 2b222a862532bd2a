package tui

import (
	"fmt"
	"strings"

	"thursday-sniper/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// RenderBias renders the bias label with its trading hint, colored per
// direction.
func RenderBias(bias domain.BiasLabel) string {
	style := BiasNeutralStyle
	switch bias {
	case domain.BiasBullish:
		style = BiasBullishStyle
	case domain.BiasBearish:
		style = BiasBearishStyle
	}
	return style.Render(fmt.Sprintf("%s (%s)", strings.ToUpper(string(bias)), bias.Description()))
}

// RenderMetricCard renders one pip metric as a bordered card. Pip values are
// always shown with zero decimal places.
func RenderMetricCard(title string, pips float64, note string, card lipgloss.Style) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		CardNoteStyle.Render(title),
		CardValueStyle.Render(fmt.Sprintf("%.0f Pips", pips)),
		CardNoteStyle.Render(note),
	)
	return card.Render(body)
}

// RenderTargets renders the safe/target/max band as three cards.
func RenderTargets(pred domain.Prediction) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		RenderMetricCard("SAFE BANKING", pred.SafePips, "High Probability", CardStyle),
		RenderMetricCard("AI TARGET", pred.TargetPips, "Model Median", TargetCardStyle),
		RenderMetricCard("MAX EXTENSION", pred.MaxPips, "Low Probability", CardStyle),
	)
}

// Advisories returns the threshold-triggered advisory lines for a
// prediction, already styled. May be empty.
func Advisories(pred domain.Prediction) []string {
	var out []string
	if pred.TargetPips > domain.HighVolThresholdPips {
		out = append(out, WarnStyle.Render("HIGH VOLATILITY ALERT: Wide Stops Required!"))
	} else if pred.TargetPips < domain.LowVolThresholdPips {
		out = append(out, InfoStyle.Render("Low Volatility Expected. Scalping conditions."))
	}
	if pred.Anomalous {
		out = append(out, WarnStyle.Render(fmt.Sprintf(
			"Inputs look unusual vs training history (anomaly %.0f%%). Treat the target with care.",
			pred.AnomalyScore*100)))
	}
	return out
}
