// Package observability builds the zap loggers used by the chartsense
// command.
package observability

import (
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log level, console format, and optional rotated file.
type Config struct {
	Level string // debug, info, warn, error
	// Format is "console" or "json".
	Format string
	// File enables a JSON log file rotated by lumberjack.
	File       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
	Name       string
}

var levelColors = map[zapcore.Level]*color.Color{
	zapcore.DebugLevel: color.New(color.FgHiBlack),
	zapcore.InfoLevel:  color.New(color.FgCyan),
	zapcore.WarnLevel:  color.New(color.FgYellow),
	zapcore.ErrorLevel: color.New(color.FgRed, color.Bold),
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	s := strings.ToUpper(level.String())
	if c, ok := levelColors[level]; ok {
		s = c.Sprint(s)
	}
	enc.AppendString(s)
}

func encoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	if format == "console" {
		ec.EncodeLevel = colorLevelEncoder
		ec.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(name + ".")
		}
		return zapcore.NewConsoleEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(ec)
}

// New returns a logger writing cfg.Format to console and, when cfg.File is
// set, JSON to a rotated file. Unknown levels fall back to info.
func New(cfg Config, console zapcore.WriteSyncer) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder(cfg.Format), console, level)}
	if cfg.File != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder("json"), w, level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel))
	if cfg.Name != "" {
		logger = logger.Named(cfg.Name)
	}
	return logger
}
