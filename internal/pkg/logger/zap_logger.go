package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ILogger is the structured logging surface services depend on.
// A nil details map is allowed everywhere.
type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

type ZapLogger struct {
	logger   *zap.Logger
	filePath string
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// fileCore writes JSON lines to a size-rotated file: at most 5
// compressed backups of 10MB each, kept for 30 days.
func fileCore(path string) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(rotator), zap.InfoLevel)
}

// NewZapLogger tees every record to the rotated file and to stdout.
// Production stdout carries the same JSON; development gets the
// console encoder with debug level enabled.
func NewZapLogger(logFilePath string, isProd bool) *ZapLogger {
	var console zapcore.Encoder
	if isProd {
		console = zapcore.NewJSONEncoder(encoderConfig())
	} else {
		console = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	consoleCore := zapcore.NewCore(console, zapcore.Lock(os.Stdout), zap.DebugLevel)

	return newWrapped(zapcore.NewTee(fileCore(logFilePath), consoleCore), logFilePath)
}

// NewIsolatedLogger writes only to the file. Chatty subsystems like
// the websocket hub get their own file so the main log stays readable.
func NewIsolatedLogger(logFilePath string) *ZapLogger {
	return newWrapped(fileCore(logFilePath), logFilePath)
}

func newWrapped(core zapcore.Core, path string) *ZapLogger {
	// Two wrapper frames sit between the call site and zap.
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
	return &ZapLogger{logger: l, filePath: path}
}

func (l *ZapLogger) write(lvl zapcore.Level, module, message string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	fields := []zap.Field{zap.String("module", module), zap.Any("details", details)}
	// details["error"] gets its own top-level field so it is queryable.
	if err, ok := details["error"]; ok && lvl >= zapcore.ErrorLevel {
		fields = append(fields, zap.Any("error_ref", err))
	}
	if ce := l.logger.Check(lvl, message); ce != nil {
		ce.Write(fields...)
	}
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.write(zapcore.DebugLevel, module, message, details)
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.write(zapcore.InfoLevel, module, message, details)
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.write(zapcore.WarnLevel, module, message, details)
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	l.write(zapcore.ErrorLevel, module, message, details)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
