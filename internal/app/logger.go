// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/cargo-service/config"
	"github.com/guttosm/cargo-service/internal/logger"
)

// InitializeLogger initializes the JSON logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
