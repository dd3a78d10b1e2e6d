// Package config reads host settings from the environment and builds the
// hosts' logger. Gameplay tuning lives in internal/loop/config.
package config

import "os"

// Environment keys shared by every host binary.
const (
	EnvLogLevel = "LOG_LEVEL"      // debug, info, warn, error
	EnvLogFile  = "LOG_FILE"       // cmd/game only: stderr is the game screen
	EnvScoreDir = "SCORE_DIR"      // directory for per-player high score files
	EnvTuning   = "SHOOTER_TUNING" // optional TOML tuning file

	EnvSSHHost    = "SSH_HOST"
	EnvSSHPort    = "SSH_PORT"
	EnvSSHHostKey = "SSH_HOST_KEY"
	EnvWebHost    = "WEB_HOST"
	EnvWebPort    = "WEB_PORT"
)

// GetEnv returns the value of the environment variable named by key, or
// fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
