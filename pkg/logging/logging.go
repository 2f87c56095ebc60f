// Package logging configures the shared zap logger for CodeScope runs.
package logging

import (
	"go.uber.org/zap"
)

// Setup builds a zap logger for the run. Verbose mode switches to the
// development config so per-file debug output becomes visible.
func Setup(verbose bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}
	return logger, nil
}
