package utils

import (
	"go.uber.org/zap"
)

// Logger is the process-wide fallback. Handlers and jobs take an
// injected logger; this one only backs constructors handed nil.
var Logger *zap.Logger

func InitLogger() {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
}

func GetLogger() *zap.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}
