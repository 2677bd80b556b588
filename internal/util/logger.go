package util

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	zapLogger  *zap.Logger
	logger     *zap.SugaredLogger
	loggerOnce sync.Once
)

// InitLogger initializes the process-wide logger. Debug mode lowers the
// level to debug and annotates entries with their caller.
func InitLogger(debug bool) {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		if !debug {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
			cfg.DisableCaller = true
			cfg.DisableStacktrace = true
		}
		zl, err := cfg.Build()
		if err != nil {
			panic(fmt.Sprintf("can't initialize zap logger: %v", err))
		}
		zapLogger = zl
		logger = zl.Sugar()
	})
}

// SyncLogger flushes buffered log entries. Called on exit.
func SyncLogger() {
	if zapLogger != nil {
		_ = zapLogger.Sync()
	}
}

func sugared() *zap.SugaredLogger {
	if logger == nil {
		InitLogger(false)
	}
	return logger
}

// Convenience wrappers so call sites stay short.

func LogDebug(msg string) { sugared().Debug(msg) }

func LogDebugf(format string, args ...interface{}) { sugared().Debugf(format, args...) }

func LogInfo(msg string) { sugared().Info(msg) }

func LogInfof(format string, args ...interface{}) { sugared().Infof(format, args...) }

func LogWarn(msg string) { sugared().Warn(msg) }

func LogWarnf(format string, args ...interface{}) { sugared().Warnf(format, args...) }

func LogError(msg string) { sugared().Error(msg) }

func LogErrorf(format string, args ...interface{}) { sugared().Errorf(format, args...) }
