package logger

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New. json production logger, LOG_LEVEL (debug, info, warn, error) overrides the level.
func New() (*zap.Logger, error) {
	viper.SetDefault("LOG_LEVEL", "info")

	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level, err := zapcore.ParseLevel(viper.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(level)

	return config.Build()
}
