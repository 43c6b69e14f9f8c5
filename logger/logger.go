// Package logger builds zerolog loggers for binders and tools.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level      string    `json:"level" yaml:"level"`
	Debug      bool      `json:"debug" yaml:"debug"`
	Output     string    `json:"output" yaml:"output"` // stdout, stderr or discard
	TimeFormat string    `json:"time_format" yaml:"time_format"`
	Writer     io.Writer `json:"-" yaml:"-"` // Overrides Output when set
}

// New returns a logger for config. Debug wins over Level.
func New(config Config) (zerolog.Logger, error) {
	output := config.Writer
	if output == nil {
		switch config.Output {
		case "", "stdout":
			output = os.Stdout
		case "stderr":
			output = os.Stderr
		case "discard":
			output = io.Discard
		default:
			return zerolog.Nop(), fmt.Errorf("unknown log output %q", config.Output)
		}
	}

	level := zerolog.InfoLevel
	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
	}

	log := zerolog.New(output).Level(level)
	if config.TimeFormat != "" {
		// Per logger, zerolog.TimeFieldFormat is process wide
		return log.Hook(timeHook(config.TimeFormat)), nil
	}
	return log.With().Timestamp().Logger(), nil
}

func timeHook(layout string) zerolog.HookFunc {
	return func(e *zerolog.Event, _ zerolog.Level, _ string) {
		e.Str(zerolog.TimestampFieldName, time.Now().Format(layout))
	}
}

func WithComponent(log zerolog.Logger, component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
