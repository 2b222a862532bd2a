package main

import (
	"log"

	"thursday-sniper/internal/config"
	"thursday-sniper/internal/ml/common"
	"thursday-sniper/internal/ml/inference"
	"thursday-sniper/internal/ml/models/gbtree"
	"thursday-sniper/internal/ml/models/iforest"
	"thursday-sniper/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	runProgramFunc = func(model tea.Model, opts ...tea.ProgramOption) error {
		_, err := tea.NewProgram(model, opts...).Run()
		return err
	}
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	svc := buildServices(cfg)
	if err := runProgramFunc(tui.NewAppModel(svc), tea.WithAltScreen()); err != nil {
		log.Fatalf("failed to run TUI: %v", err)
	}
}

// buildServices loads the model artifacts exactly once. A volatility-model
// load failure puts the TUI into degraded mode rather than aborting the
// process; a bad anomaly artifact only disables the advisory.
func buildServices(cfg *config.Config) tui.Services {
	model, err := gbtree.Load(cfg.ModelPath)
	if err == nil {
		err = model.ValidateSchema(common.FeatureSchemaVersion, common.FeatureNames)
	}
	if err != nil {
		log.Printf("volatility model unavailable: %v", err)
		return tui.Services{ModelErr: err}
	}

	var anomaly inference.AnomalyScorer
	if cfg.AnomalyModelPath != "" {
		am, aerr := iforest.Load(cfg.AnomalyModelPath)
		if aerr == nil {
			aerr = am.ValidateSchema(common.FeatureSchemaVersion, common.FeatureNames)
		}
		if aerr != nil {
			log.Printf("Warning: anomaly advisory disabled: %v", aerr)
		} else {
			anomaly = am
		}
	}

	return tui.Services{
		Predictor: inference.NewService(model, anomaly, inference.Config{
			AnomalyThreshold: cfg.AnomalyThreshold,
		}),
	}
}
