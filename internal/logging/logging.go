// Package logging builds the process-wide zap logger for a deployment profile.
package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a logger suited to the deployment: readable console output for
// dev, silence for test, JSON everywhere else.
func New(deployment string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	switch strings.TrimSpace(deployment) {
	case "test":
		return zap.NewNop()
	case "dev", "":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}

	return logger.With(zap.String("deployment", deployment))
}
