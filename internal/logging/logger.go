//
//  Copyright © Zscaler Inc. All rights reserved.
//

// Package logging provides module-scoped loggers built on zap.
//
// Every package obtains its own named logger via [GetLogger]. Levels are
// managed centrally and may be adjusted at runtime with [UpdateLogLevels],
// using strings of the form "module:level;.:info" where "." denotes the
// default applied to all modules without an explicit setting.
//
// The output format defaults to JSON; set LOG_FORMATTER=text for a
// console-friendly encoding. Loggers write to stderr so that the stdio MCP
// transport retains exclusive use of stdout.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a leveled, module-scoped wrapper around zap.
type Logger struct {
	module string
	sugar  *zap.SugaredLogger
	level  zapcore.Level
	writer io.Writer // test override; nil means stderr
}

func newEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	if os.Getenv("LOG_FORMATTER") == "text" {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

// newLogger creates an unmanaged logger. Applications should call
// [GetLogger], which registers the logger with the manager.
func newLogger(module string) *Logger {
	l := &Logger{
		module: module,
		level:  zapcore.InfoLevel,
	}
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	var output io.Writer = os.Stderr
	if l.writer != nil {
		output = l.writer
	}

	core := zapcore.NewCore(newEncoder(), zapcore.AddSync(output), l.level)

	options := []zap.Option{
		zap.AddCallerSkip(1),
	}
	if os.Getenv("LOG_REPORT_CALLER") != "" {
		options = append(options, zap.AddCaller())
	}

	l.sugar = zap.New(core, options...).Sugar().With(zap.String("module", l.module))
}

// SetLevel sets the logging level for this logger.
func (l *Logger) SetLevel(level zapcore.Level) {
	l.level = level
	l.rebuild()
}

// IsDebugEnabled returns true if the current level is debug or lower. Use it
// to guard debug statements whose arguments are expensive to compute.
func (l *Logger) IsDebugEnabled() bool {
	return l.level <= zapcore.DebugLevel
}

// SetOut redirects log output, primarily for tests.
func (l *Logger) SetOut(w io.Writer) {
	l.writer = w
	l.rebuild()
}

// With returns a logger that attaches the given key/value pairs to every
// message, sharing this logger's level.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{
		module: l.module,
		sugar:  l.sugar.With(args...),
		level:  l.level,
		writer: l.writer,
	}
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Infof logs an info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Fatalf logs a fatal message and exits.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.sugar.Fatalf(format, args...)
}
