// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"productapi/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger from cfg and returns it. Development
// gets a human-friendly console writer, every other environment JSON.
func Setup(cfg config.AppConfig) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.IsDevelopment() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return setup(out, cfg.LogLevel)
}

func setup(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	l := zerolog.New(out).With().Timestamp().Str("service", "products-api").Logger()
	log.Logger = l
	if err != nil {
		l.Warn().Str("configured_level", level).Msg("invalid log level, using info")
	}
	return l
}
