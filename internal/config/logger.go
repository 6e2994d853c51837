package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds the base zerolog logger, pretty-printed to a terminal and
// JSON elsewhere, matching the teacher's internal/util.InitLogger but
// parameterized by service name instead of hardcoding "polymarket-indexer".
func NewLogger(serviceName string) *zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var logger zerolog.Logger
	if isTerminal() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().
			Timestamp().
			Caller().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger()
	}
	return &logger
}

// SetLogLevel parses one of debug/info/warn/error (case-insensitive) and
// applies it globally, defaulting to info on anything else.
func SetLogLevel(logger *zerolog.Logger, levelStr string) {
	var level zerolog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = zerolog.DebugLevel
	case "info", "":
		level = zerolog.InfoLevel
	case "warn", "warning":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
		logger.Warn().Str("configured_level", levelStr).Msg("unknown log level, defaulting to info")
	}
	zerolog.SetGlobalLevel(level)
}

func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
