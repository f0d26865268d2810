package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the application logger. Loggers are passed explicitly to the
// components that need them; there is no package-level singleton.
func New(appEnv string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)

	if appEnv == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return log, nil
}
