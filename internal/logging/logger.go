package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	// LevelError only logs errors
	LevelError LogLevel = iota
	// LevelWarn logs warnings and errors
	LevelWarn
	// LevelInfo logs general information, warnings and errors
	LevelInfo
	// LevelDebug logs detailed debug information and all above
	LevelDebug
	// LevelTrace logs very detailed trace information and all above
	LevelTrace
)

// traceLevel sits one step below zap's debug level.
const traceLevel = zapcore.DebugLevel - 1

var levelNames = map[LogLevel]string{
	LevelError: "ERROR",
	LevelWarn:  "WARN",
	LevelInfo:  "INFO",
	LevelDebug: "DEBUG",
	LevelTrace: "TRACE",
}

var zapLevels = map[LogLevel]zapcore.Level{
	LevelError: zapcore.ErrorLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelDebug: zapcore.DebugLevel,
	LevelTrace: traceLevel,
}

// String returns the upper-case level name.
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel maps a level name such as "DEBUG" to its LogLevel.
func ParseLevel(name string) (LogLevel, bool) {
	for level, n := range levelNames {
		if n == name {
			return level, true
		}
	}
	return LevelInfo, false
}

// Logger provides leveled, prefixed logging on top of zap.
// Loggers derived with WithPrefix share the level of their parent.
type Logger struct {
	prefix string
	base   *zap.Logger
	level  zap.AtomicLevel
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// GetLogger returns the default logger instance
func GetLogger() *Logger {
	once.Do(func() {
		defaultLogger = NewLogger("DIRSIZE")

		// Set initial log level from environment
		if name := os.Getenv("LOG_LEVEL"); name != "" {
			if level, ok := ParseLevel(name); ok {
				defaultLogger.SetLevel(level)
			}
		}
	})
	return defaultLogger
}

// NewLogger creates a new logger with the given prefix writing to stderr.
// Stdout is left to command results.
func NewLogger(prefix string) *Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = encodeLevel
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if os.Getenv("LOG_LONGFILE") != "" {
		encCfg.EncodeCaller = zapcore.FullCallerEncoder
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
	return newWithCore(prefix, core, level)
}

// NewWithCore builds a logger over an existing zap core. Tests use it with
// zaptest/observer; the level still gates what reaches the core.
func NewWithCore(prefix string, core zapcore.Core) *Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return newWithCore(prefix, gatedCore{Core: core, level: level}, level)
}

func newWithCore(prefix string, core zapcore.Core, level zap.AtomicLevel) *Logger {
	return &Logger{
		prefix: prefix,
		base:   zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).Named(prefix),
		level:  level,
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	zl, ok := zapLevels[level]
	if !ok {
		return
	}
	l.level.SetLevel(zl)
}

// Level reports the current logging level.
func (l *Logger) Level() LogLevel {
	current := l.level.Level()
	for level, zl := range zapLevels {
		if zl == current {
			return level
		}
	}
	return LevelInfo
}

// log performs the actual logging
func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	ce := l.base.Check(zapLevels[level], fmt.Sprintf(format, args...))
	if ce == nil {
		return
	}
	ce.Write()
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Trace logs a trace message
func (l *Logger) Trace(format string, args ...interface{}) {
	l.log(LevelTrace, format, args...)
}

// WithPrefix creates a new logger with an additional prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		prefix: l.prefix + "." + prefix,
		base:   l.base.Named(prefix),
		level:  l.level,
	}
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

func encodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == traceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(level, enc)
}

// gatedCore applies an AtomicLevel in front of a core whose own
// enabler may be more permissive.
type gatedCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c gatedCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level) && c.Core.Enabled(level)
}

func (c gatedCore) With(fields []zapcore.Field) zapcore.Core {
	return gatedCore{Core: c.Core.With(fields), level: c.level}
}

func (c gatedCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(ent.Level) {
		return ce
	}
	return c.Core.Check(ent, ce)
}

// Prefix returns the dotted prefix chain of this logger.
func (l *Logger) Prefix() string {
	return l.prefix
}
