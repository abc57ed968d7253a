package core

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// traceLevel sits below zap's debug level.
const traceLevel = zapcore.DebugLevel - 1

// Logger is the leveled logger handed to the wallet manager.
type Logger struct {
	level LogLevel
	z     *zap.SugaredLogger
}

// NewLogger builds a logger that writes JSON lines to w at the given level.
// LogNone or a nil writer produce a logger that discards everything.
func NewLogger(level LogLevel, w io.Writer) *Logger {
	if level == LogNone || w == nil {
		return &Logger{level: LogNone, z: zap.NewNop().Sugar()}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = encodeLevel

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(zapLevel(level)),
	)
	return &Logger{
		level: level,
		z:     zap.New(core).Named("manager").Sugar(),
	}
}

// NopLogger returns a logger that discards everything.
func NopLogger() *Logger {
	return NewLogger(LogNone, nil)
}

// Level returns the configured level.
func (l *Logger) Level() LogLevel {
	if l == nil {
		return LogNone
	}
	return l.level
}

func (l *Logger) Trace(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	l.z.Logw(traceLevel, msg, keysAndValues...)
}

func (l *Logger) Debug(msg string, keysAndValues ...any) {
	if l != nil {
		l.z.Debugw(msg, keysAndValues...)
	}
}

func (l *Logger) Info(msg string, keysAndValues ...any) {
	if l != nil {
		l.z.Infow(msg, keysAndValues...)
	}
}

func (l *Logger) Warn(msg string, keysAndValues ...any) {
	if l != nil {
		l.z.Warnw(msg, keysAndValues...)
	}
}

func (l *Logger) Error(msg string, keysAndValues ...any) {
	if l != nil {
		l.z.Errorw(msg, keysAndValues...)
	}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.z.Sync()
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogTrace:
		return traceLevel
	case LogDebug:
		return zapcore.DebugLevel
	case LogInfo:
		return zapcore.InfoLevel
	case LogError:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == traceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}
