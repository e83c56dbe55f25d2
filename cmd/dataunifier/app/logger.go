package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/dataunifier/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. LOG_LEVEL environment variable or log_level config key
//  5. Default (info)
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)

	return logging.NewLogger(logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor || os.Getenv("NO_COLOR") != "",
		AddCaller: level == "debug" || level == "trace",
	})
}

// determineLogLevel determines the log level using the precedence rules.
func determineLogLevel(config *Config) string {
	if config.levelFromFlag {
		return validateLogLevel(config.LogLevel)
	}

	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}

	if config.LogLevel != "" {
		return validateLogLevel(config.LogLevel)
	}
	return "info"
}

// validateLogLevel returns level when it is valid and "info" otherwise.
func validateLogLevel(level string) string {
	switch normalized := strings.ToLower(strings.TrimSpace(level)); normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", level)
		return "info"
	}
}
