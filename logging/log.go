// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A Level is a logging priority. Higher levels are more important.
type Level int8

// Logging levels (matching zap core internals).
const (
	// DebugLevel logs are typically voluminous, and are usually disabled in
	// production.
	DebugLevel Level = -1
	// InfoLevel is the default logging priority.
	InfoLevel Level = 0
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel Level = 1
	// ErrorLevel logs are high-priority. If an application is running smoothly,
	// it shouldn't generate any error-level logs.
	ErrorLevel Level = 2
	// PanicLevel logs a message, then panics.
	PanicLevel Level = 4
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel Level = 5
)

// ZapLevel return the zapcore internal level value corresponding to this level.
func (l Level) ZapLevel() zapcore.Level {
	return zapcore.Level(l)
}

func (l Level) String() string {
	return l.ZapLevel().String()
}

// ParseLevel parses a level string as used in config files ("Debug",
// "info", ...) into a Level value.
func ParseLevel(l string) (Level, error) {
	switch strings.ToLower(l) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warning", "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "panic":
		return PanicLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return Level(100), fmt.Errorf("couldn't parse log level: %v", l)
	}
}

// Logger is a thin wrapper over a zap logger that remembers its own
// configuration, so named sub-loggers can be re-levelled independently.
type Logger struct {
	*zap.Logger
	config *zap.Config
	name   string
}

// New creates a new logger from a zap core and its originating config.
func New(core zapcore.Core, cfg *zap.Config) *Logger {
	return &Logger{
		Logger: zap.New(core),
		config: cfg,
	}
}

// Clone returns a copy of this logger with an independent level.
func (log *Logger) Clone() *Logger {
	newConfig := cloneConfig(log.config)
	newLogger, err := newConfig.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{
		Logger: newLogger,
		config: newConfig,
		name:   log.name,
	}
}

// Named returns a clone of the logger with the given name appended to its
// existing name, dot separated.
func (log *Logger) Named(name string) *Logger {
	c := log.Clone()
	newName := name
	if log.name != "" {
		newName = fmt.Sprintf("%s.%s", log.name, name)
	}
	return &Logger{
		Logger: c.Logger.Named(newName),
		config: c.config,
		name:   newName,
	}
}

// With returns a clone of the logger carrying the given fields on every
// subsequent log line.
func (log *Logger) With(fields ...zap.Field) *Logger {
	c := log.Clone()
	return &Logger{
		Logger: c.Logger.With(fields...),
		config: c.config,
		name:   c.name,
	}
}

func (log *Logger) GetLevel() Level {
	return (Level)(log.config.Level.Level())
}

func (log *Logger) GetLevelString() string {
	return log.config.Level.String()
}

func (log *Logger) GetName() string {
	return log.name
}

// IsDebug returns true if the logger level is at or below debug. Use it to
// guard expensive log line construction.
func (log *Logger) IsDebug() bool {
	return log.GetLevel() <= DebugLevel
}

// SetLevel changes the level of this logger (and only this logger) at runtime.
func (log *Logger) SetLevel(level Level) {
	lvl := (zapcore.Level)(level)
	if log.config.Level.Level() == lvl {
		return
	}
	log.config.Level.SetLevel(lvl)
}

// AtExit flushes the logs before exiting the process. Useful when an
// app shuts down so we store all logging possible. This is meant to be used
// with defer when initializing your logger.
func (log *Logger) AtExit() {
	if log.Logger != nil {
		log.Logger.Sync()
	}
}

func cloneConfig(cfg *zap.Config) *zap.Config {
	c := zap.Config{
		Level:             zap.NewAtomicLevelAt(cfg.Level.Level()),
		Development:       cfg.Development,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		Sampling:          nil,
		Encoding:          cfg.Encoding,
		EncoderConfig:     cfg.EncoderConfig,
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  cfg.ErrorOutputPaths,
		InitialFields:     make(map[string]interface{}),
	}
	for k, v := range cfg.InitialFields {
		c.InitialFields[k] = v
	}
	if cfg.Sampling != nil {
		c.Sampling = &zap.SamplingConfig{
			Initial:    cfg.Sampling.Initial,
			Thereafter: cfg.Sampling.Thereafter,
		}
	}
	return &c
}

// NewLoggerFromConfig creates a logger according to the given custom config,
// falling back to a reasonable production logger should any of it be invalid.
func NewLoggerFromConfig(config Config) *Logger {
	if config.Environment == "dev" {
		return NewDevLogger()
	}
	return NewProdLogger()
}

// NewDevLogger creates a console, human readable logger, defaulting to debug
// level. Useful in development or testing.
func NewDevLogger() *Logger {
	return NewLoggerFromEnv("dev")
}

// NewProdLogger creates a JSON encoded logger at info level, one line per
// entry, suitable for log shipping.
func NewProdLogger() *Logger {
	return NewLoggerFromEnv("prod")
}

// NewTestLogger creates a logger instance for use in unit tests.
func NewTestLogger() *Logger {
	return NewLoggerFromEnv("dev")
}

func NewLoggerFromEnv(env string) *Logger {
	var encoderConfig zapcore.EncoderConfig
	var encoder zapcore.Encoder
	var config zap.Config
	var level zapcore.Level
	/*
		Choices: (with "*" for default)
		CallerEncoder: full*
		DurationEncoder: nanos, seconds*, string
		LevelEncoder: capital, capitalColor, color, lowercase*
		NameEncoder: full*
		TimeEncoder: epoch*, iso8601, millis, nanos
	*/
	switch env {
	case "dev":
		encoderConfig = zapcore.EncoderConfig{
			CallerKey:      "C",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			LevelKey:       "L",
			LineEnding:     "\n",
			MessageKey:     "M",
			NameKey:        "N",
			TimeKey:        "T",
		}
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
		level = zapcore.Level(DebugLevel)
		config = zap.Config{
			Level:            zap.NewAtomicLevelAt(level),
			Development:      true,
			Encoding:         "console",
			EncoderConfig:    encoderConfig,
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		}
	default:
		encoderConfig = zapcore.EncoderConfig{
			CallerKey:      "caller",
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeName:     zapcore.FullNameEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			LevelKey:       "level",
			LineEnding:     "\n",
			MessageKey:     "message",
			NameKey:        "logger",
			StacktraceKey:  "stacktrace",
			TimeKey:        "@timestamp",
		}
		encoder = zapcore.NewJSONEncoder(encoderConfig)
		level = zapcore.Level(InfoLevel)
		config = zap.Config{
			Level:            zap.NewAtomicLevelAt(level),
			Development:      false,
			Encoding:         "json",
			EncoderConfig:    encoderConfig,
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		}
	}

	core := zapcore.NewCore(encoder, os.Stdout, config.Level)
	return New(core, &config)
}
