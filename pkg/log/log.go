package log

import (
	"os"

	"go.uber.org/zap"
)

func init() {
	var (
		logger *zap.Logger
		err    error
	)

	if os.Getenv("MODE") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	zap.ReplaceGlobals(logger)
}
