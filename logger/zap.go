package logger

import (
	"go.uber.org/zap"

	"diskbtree"
)

// Zap wraps a zap.Logger to implement diskbtree.Logger.
type Zap struct {
	logger *zap.SugaredLogger
}

// NewZap creates a diskbtree.Logger from a zap.Logger.
func NewZap(logger *zap.Logger) diskbtree.Logger {
	return &Zap{logger: logger.Sugar()}
}

// Error logs an error message with key-value pairs.
func (z *Zap) Error(msg string, args ...any) {
	z.logger.Errorw(msg, args...)
}

// Warn logs a warning message with key-value pairs.
func (z *Zap) Warn(msg string, args ...any) {
	z.logger.Warnw(msg, args...)
}

// Info logs an info message with key-value pairs.
func (z *Zap) Info(msg string, args ...any) {
	z.logger.Infow(msg, args...)
}

// Debug logs a debug message with key-value pairs.
func (z *Zap) Debug(msg string, args ...any) {
	z.logger.Debugw(msg, args...)
}
