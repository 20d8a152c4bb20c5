package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Diagnostics writes reconciliation payloads to an append-only JSON file so
// dropped callbacks can be inspected offline. When no path is configured it
// falls back to the global logger.
func Diagnostics(path string) *zap.Logger {
	if path == "" {
		return L().Named("diagnostics")
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}

	diag, err := cfg.Build()
	if err != nil {
		L().Error("failed to open diagnostics sink, using global logger", zap.Error(err))
		return L().Named("diagnostics")
	}
	return diag
}
