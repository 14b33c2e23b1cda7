// internal/util/logging.go
package util

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugMode controls whether debug logs are emitted.
var DebugMode = false

// InitDebugMode reads CROJ_DEBUG. Any value other than "", "0" or "false"
// enables debug logging.
func InitDebugMode() {
	debugEnv := os.Getenv("CROJ_DEBUG")
	DebugMode = debugEnv != "" && strings.ToLower(debugEnv) != "false" && debugEnv != "0"
}

// NewLogger builds the console logger shared by the commands. Logs go to
// stderr so that stdout carries only program output.
func NewLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(LogLevel())
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = !DebugMode
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	return config.Build()
}

// LogLevel returns Debug in debug mode and Warn otherwise.
func LogLevel() zapcore.Level {
	if DebugMode {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}
