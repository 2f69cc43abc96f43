package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/aria-assistant/cli/internal/logger"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Load reads the configuration file at configPath through viper, layering
// environment overrides (ARIA_ prefix, dots as underscores) over file values
// over defaults. A missing file is not an error; defaults apply. The
// returned viper instance backs `aria config get/set`.
func Load(configPath string) (*Config, *viper.Viper, error) {
	// A project-local .env is applied to the process environment before
	// viper reads it, so ARIA_* overrides can live there.
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", "error", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ARIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		logger.Debug("Config file not found, using defaults", "path", configPath)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, v, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("logging.verbose", defaults.Logging.Verbose)
	v.SetDefault("commands.confirm_dangerous", defaults.Commands.ConfirmDangerous)
	v.SetDefault("commands.execution_timeout", defaults.Commands.ExecutionTimeout)
	v.SetDefault("voice.enabled", defaults.Voice.Enabled)
	v.SetDefault("voice.language", defaults.Voice.Language)
	v.SetDefault("voice.energy_threshold", defaults.Voice.EnergyThreshold)
	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	v.SetDefault("notifications.duration", defaults.Notifications.Duration)
	v.SetDefault("apps.aliases", defaults.Apps.Aliases)
}
