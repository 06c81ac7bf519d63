package config

import (
	"fmt"
	"strings"

	"github.com/input-output-hk/gofile-uploader/errors"
	"github.com/input-output-hk/gofile-uploader/gofile"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the settings needed before any file or network access.
// All problems are reported together.
func (c *Config) Validate() error {
	var problems []string

	if c.FilePath == "" {
		problems = append(problems, "file path is required")
	}

	if err := gofile.ValidateEndpoint(c.Endpoint); err != nil {
		problems = append(problems, problemText(err))
	}

	if c.Timeout < 0 {
		problems = append(problems, fmt.Sprintf("timeout must not be negative, got %s", c.Timeout))
	}

	if !isValidLogLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("log level %q is not one of %s",
			c.LogLevel, strings.Join(validLogLevels, ", ")))
	}

	if len(problems) > 0 {
		return errors.New(
			errors.CodeInvalidConfig,
			fmt.Sprintf("configuration validation failed: %s", strings.Join(problems, "; ")),
		)
	}

	return nil
}

// problemText returns the message of a platform error without its code prefix.
func problemText(err error) string {
	var pe *errors.PlatformError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}

func isValidLogLevel(level string) bool {
	for _, l := range validLogLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}
