// Package logging provides categorized structured logging for bacmap.
// Each subsystem logs through a named child of one shared zap logger so a
// single config block controls level, format, and destination for all of
// them.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bacmap/internal/config"
)

// Category names a logging subsystem.
type Category string

const (
	CategoryBoot       Category = "boot"       // Startup and configuration
	CategoryDictionary Category = "dictionary" // Dictionary loading and hot reload
	CategoryNormalize  Category = "normalize"  // Point normalization
	CategorySignature  Category = "signature"  // Signature building
	CategoryMatch      Category = "match"      // Template matching
	CategoryAutoMap    Category = "automap"    // Equipment auto-mapping
	CategoryTemplate   Category = "template"   // Template application
	CategoryStore      Category = "store"      // SQLite repository
	CategoryCatalog    Category = "catalog"    // Catalog orchestration
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	loggers = make(map[Category]*zap.Logger)
)

// Initialize builds the shared logger from config. Before Initialize (and
// after a failed Initialize) every category logger is a no-op, so library
// code can log unconditionally.
func Initialize(cfg config.LoggingConfig) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("failed to parse log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if cfg.Format != "json" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zc.OutputPaths = []string{"stderr"}
	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
	}
	zc.ErrorOutputPaths = zc.OutputPaths

	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	base = logger
	loggers = make(map[Category]*zap.Logger)
	return nil
}

// Get returns the logger for a category, creating it on first use.
func Get(category Category) *zap.Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := base.Named(string(category))
	loggers[category] = l
	return l
}

// Sync flushes buffered log entries. Call at shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}
