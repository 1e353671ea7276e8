package utils

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	initOnce sync.Once
)

// InitLogger builds the process-wide structured logger. Safe to call more
// than once; the first call wins.
func InitLogger() {
	initOnce.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		logger = l
	})
}

// GetLogger returns the shared logger, initializing it on first use.
func GetLogger() *zap.Logger {
	InitLogger()
	return logger
}
