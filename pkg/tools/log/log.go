package log

import (
	"github.com/spf13/viper"
	"github.com/vessel-io/agent/pkg/env"
	"go.uber.org/zap"
)

// this package replaces the zap global logger,
// import it with a blank identifier before any zap.S() call
func init() {
	var logger *zap.Logger
	var err error
	if viper.GetString(env.Environment) == "production" {
		logger, err = zap.NewProduction()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		logger, err = cfg.Build()
	}
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}
