package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajitpratap0/nebula-jdbc/pkg/logger"
)

// Settings holds process-wide CLI settings.
// Precedence (highest to lowest): flags > NEBULA_* env vars > defaults
type Settings struct {
	LogLevel    string `mapstructure:"log_level"`
	LogEncoding string `mapstructure:"log_encoding"`
}

const (
	defaultLogLevel    = "warn"
	defaultLogEncoding = "console"
)

// loadSettings resolves Settings for cmd.
func loadSettings(cmd *cobra.Command) (*Settings, error) {
	v := viper.New()

	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_encoding", defaultLogEncoding)

	v.SetEnvPrefix("NEBULA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	for key, name := range map[string]string{"log_level": "log-level", "log_encoding": "log-encoding"} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("unable to bind flag %s: %w", name, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	return &s, nil
}

// initLogging installs the global logger. Logs go to stderr so stdout stays
// machine readable.
func initLogging(s *Settings) error {
	switch s.LogEncoding {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log encoding %q, expected json or console", s.LogEncoding)
	}
	return logger.Init(logger.Config{
		Level:       s.LogLevel,
		Encoding:    s.LogEncoding,
		OutputPaths: []string{"stderr"},
	})
}
