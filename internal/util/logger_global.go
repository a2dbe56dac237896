package util

import (
	"sync"
	"sync/atomic"
)

type loggerBox struct {
	logger LoggerInterface
}

var (
	globalLogger atomic.Pointer[loggerBox]
	loggerOnce   sync.Once
)

// InitLogger initializes the global logger once. Later calls are no-ops.
func InitLogger(opts LoggerOptions) error {
	var err error
	loggerOnce.Do(func() {
		var logger *Logger
		logger, err = NewLogger(opts)
		if err == nil {
			SetLogger(logger)
		}
	})
	return err
}

// SetLogger replaces the global logger, e.g. with a buffer-backed one in tests.
func SetLogger(logger LoggerInterface) {
	globalLogger.Store(&loggerBox{logger: logger})
}

// GetLogger returns the global logger, or nil before InitLogger.
func GetLogger() LoggerInterface {
	if box := globalLogger.Load(); box != nil {
		return box.logger
	}
	return nil
}

// Package-level helpers drop entries until a logger is installed

func LogInfo(msg string, fields ...Field) {
	if logger := GetLogger(); logger != nil {
		logger.Info(msg, fields...)
	}
}

func LogInfof(format string, args ...any) {
	if logger := GetLogger(); logger != nil {
		logger.Infof(format, args...)
	}
}

func LogDebug(msg string, fields ...Field) {
	if logger := GetLogger(); logger != nil {
		logger.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...any) {
	if logger := GetLogger(); logger != nil {
		logger.Debugf(format, args...)
	}
}

func LogWarn(msg string, fields ...Field) {
	if logger := GetLogger(); logger != nil {
		logger.Warn(msg, fields...)
	}
}

func LogWarnf(format string, args ...any) {
	if logger := GetLogger(); logger != nil {
		logger.Warnf(format, args...)
	}
}

func LogError(msg string, fields ...Field) {
	if logger := GetLogger(); logger != nil {
		logger.Error(msg, fields...)
	}
}

func LogErrorf(format string, args ...any) {
	if logger := GetLogger(); logger != nil {
		logger.Errorf(format, args...)
	}
}
