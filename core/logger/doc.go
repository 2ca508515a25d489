// Package logger builds the zap loggers used across mana-vault.
//
// # Levels and Encoding
//
// Level accepts any zap level name (debug, info, warn, error). Debug switches to
// zap's development preset; the rest use the production preset. Format selects
// json output or colored console output for interactive use.
//
// # Request Correlation
//
// The rayid middleware stores a request id in the fiber locals. WithRayID attaches
// it to a logger so every line logged while serving a request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Index rebuilt", zap.Int64("cards", report.Cards))
//
//	// In a request handler:
//	logger.WithRayID(log, c).Error("Search failed", zap.Error(err))
package logger
