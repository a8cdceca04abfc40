// Package logger builds the zerolog logger used by the command line.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var ErrInvalidConfig = errors.New("invalid logger configuration")

// Config contains logging configuration.
type Config struct {
	Level   string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error fatal disabled"`
	Format  string `mapstructure:"format" validate:"omitempty,oneof=console json"`
	Output  string `mapstructure:"output" validate:"omitempty,oneof=stdout stderr"`
	NoColor bool   `mapstructure:"no_color"`
}

// ApplyDefaults fills the empty fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = zerolog.InfoLevel.String()
	}

	if c.Format == "" {
		c.Format = FormatConsole
	}

	if c.Output == "" {
		c.Output = "stderr"
	}
}

// New creates a logger from cfg. Logs are written to w when it is set, otherwise to the
// output named in cfg.
func New(cfg Config, w io.Writer) (zerolog.Logger, error) {
	cfg.ApplyDefaults()

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(ErrInvalidConfig, "level %q", cfg.Level)
	}

	if w == nil {
		w = outputWriter(cfg.Output)
	}

	var zl zerolog.Logger

	switch strings.ToLower(cfg.Format) {
	case FormatConsole:
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
			NoColor:    cfg.NoColor,
		})
	case FormatJSON:
		zl = zerolog.New(w)
	default:
		return zerolog.Nop(), errors.Wrapf(ErrInvalidConfig, "format %q", cfg.Format)
	}

	return zl.Level(level).With().Timestamp().Logger(), nil
}

func outputWriter(output string) io.Writer {
	if strings.ToLower(output) == "stdout" {
		return os.Stdout
	}

	return os.Stderr
}
