package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"thursday-sniper/internal/config"
	"thursday-sniper/internal/ml/common"
	"thursday-sniper/internal/ml/inference"
	"thursday-sniper/internal/ml/models/gbtree"
	"thursday-sniper/internal/ml/models/iforest"
	"thursday-sniper/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"
)

var (
	loadEnvFunc       = godotenv.Load
	loadConfigFunc    = config.Load
	newWishServerFunc = wish.NewServer
	setupSignalNotify = ossignal.Notify
	waitForSignalFunc = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	// Load artifacts once; every session shares the same read-only handles.
	// Inference is stateless so concurrent sessions need no locking.
	services := buildServices(cfg)
	if services.ModelErr != nil {
		log.Printf("serving in degraded mode: %v", services.ModelErr)
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)
	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			log.Printf("SSH session: user=%s fingerprint=%s", ctx.User(), gossh.FingerprintSHA256(key))
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				svc := services
				svc.Username = s.User()

				model := tui.NewAppModel(svc)
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}

// buildServices mirrors the local entry point: missing volatility model
// means degraded sessions, missing anomaly model only drops the advisory.
func buildServices(cfg *config.Config) tui.Services {
	model, err := gbtree.Load(cfg.ModelPath)
	if err == nil {
		err = model.ValidateSchema(common.FeatureSchemaVersion, common.FeatureNames)
	}
	if err != nil {
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
