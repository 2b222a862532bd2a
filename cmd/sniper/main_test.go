package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"thursday-sniper/internal/ml/common"
	"thursday-sniper/internal/ml/models/gbtree"

	tea "github.com/charmbracelet/bubbletea"
)

func writeModelFixture(t *testing.T) string {
	t.Helper()
	model, err := gbtree.New(common.FeatureSchemaVersion, common.FeatureNames, 4.0,
		[]*gbtree.Node{gbtree.Split(0, 65, gbtree.Leaf(-0.2), gbtree.Leaf(0.2))})
	if err != nil {
		t.Fatalf("build fixture model: %v", err)
	}
	blob, err := model.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal fixture model: %v", err)
	}
	path := filepath.Join(t.TempDir(), "thursday_model.json")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestBuildServicesLoadsModel(t *testing.T) {
	t.Setenv("MODEL_PATH", writeModelFixture(t))
	t.Setenv("ANOMALY_MODEL_PATH", "")

	svc := buildServices(loadConfigFunc())
	if svc.ModelErr != nil {
		t.Fatalf("expected model to load, got %v", svc.ModelErr)
	}
	if svc.Predictor == nil {
		t.Fatal("expected predictor to be wired")
	}
}

func TestBuildServicesDegradedOnMissingModel(t *testing.T) {
	t.Setenv("MODEL_PATH", filepath.Join(t.TempDir(), "missing.json"))

	svc := buildServices(loadConfigFunc())
	if svc.ModelErr == nil {
		t.Fatal("expected ModelErr for missing artifact")
	}
	if svc.Predictor != nil {
		t.Fatal("expected no predictor in degraded mode")
	}
}

func TestBuildServicesRejectsSchemaDrift(t *testing.T) {
	// An artifact trained against different feature names must be refused at
	// startup, not scored silently.
	model, err := gbtree.New(common.FeatureSchemaVersion,
		[]string{"a", "b", "c", "d", "e", "f", "g", "h"}, 0,
		[]*gbtree.Node{gbtree.Leaf(4.0)})
	if err != nil {
		t.Fatalf("build fixture model: %v", err)
	}
	blob, err := model.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "drifted.json")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("MODEL_PATH", path)

	svc := buildServices(loadConfigFunc())
	if svc.ModelErr == nil {
		t.Fatal("expected ModelErr for schema drift")
	}
}

func TestMainRunsProgram(t *testing.T) {
	t.Setenv("MODEL_PATH", writeModelFixture(t))

	origRun := runProgramFunc
	defer func() { runProgramFunc = origRun }()

	ran := make(chan struct{}, 1)
	runProgramFunc = func(model tea.Model, opts ...tea.ProgramOption) error {
		if model == nil {
			t.Error("expected non-nil root model")
		}
		ran <- struct{}{}
		return nil
	}

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
	select {
	case <-ran:
	default:
		t.Fatal("program was never run")
	}
}
