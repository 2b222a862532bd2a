package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ModelPath        string
	AnomalyModelPath string
	AnomalyThreshold float64

	SSHPort        int
	SSHHostKeyPath string
}

func Load() *Config {
	cfg := &Config{}

	cfg.ModelPath = strings.TrimSpace(os.Getenv("MODEL_PATH"))
	if cfg.ModelPath == "" {
		cfg.ModelPath = "thursday_model.json"
	}

	// Optional; no warning when unset, the advisory is simply disabled.
	cfg.AnomalyModelPath = strings.TrimSpace(os.Getenv("ANOMALY_MODEL_PATH"))

	cfg.AnomalyThreshold = 0.7
	if v := strings.TrimSpace(os.Getenv("ANOMALY_THRESHOLD")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 && n < 1 {
			cfg.AnomalyThreshold = n
		} else {
			log.Printf("Warning: ignoring invalid ANOMALY_THRESHOLD=%q", v)
		}
	}

	cfg.SSHPort = 2222
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			cfg.SSHPort = n
		} else {
			log.Printf("Warning: ignoring invalid SSH_PORT=%q", v)
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/sniper_host_key"
	}

	return cfg
}
