package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aria-assistant/cli/internal/logger"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the project-local configuration file location.
const DefaultConfigPath = ".aria/config.yaml"

// Config represents the assistant configuration
type Config struct {
	Logging       LoggingConfig       `yaml:"logging" mapstructure:"logging"`
	Commands      CommandsConfig      `yaml:"commands" mapstructure:"commands"`
	Voice         VoiceConfig         `yaml:"voice" mapstructure:"voice"`
	Notifications NotificationsConfig `yaml:"notifications" mapstructure:"notifications"`
	Apps          AppsConfig          `yaml:"apps" mapstructure:"apps"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// CommandsConfig contains command execution settings
type CommandsConfig struct {
	// ConfirmDangerous gates destructive actions (shutdown, restart, file
	// deletion). When true the handler performs no side effect and reports
	// that confirmation is required.
	ConfirmDangerous bool `yaml:"confirm_dangerous" mapstructure:"confirm_dangerous"`

	// ExecutionTimeout is an advisory per-command timeout in seconds. It is
	// carried for handler-level enforcement; the dispatcher does not enforce
	// it.
	ExecutionTimeout int `yaml:"execution_timeout" mapstructure:"execution_timeout"`
}

// VoiceConfig contains speech capture settings consumed by the voice layer,
// not by the command core. Persisted here for a single configuration file.
type VoiceConfig struct {
	Enabled         bool   `yaml:"enabled" mapstructure:"enabled"`
	Language        string `yaml:"language" mapstructure:"language"`
	EnergyThreshold int    `yaml:"energy_threshold" mapstructure:"energy_threshold"`
}

// NotificationsConfig contains desktop notification settings consumed by the
// shell layer.
type NotificationsConfig struct {
	Enabled  bool `yaml:"enabled" mapstructure:"enabled"`
	Duration int  `yaml:"duration" mapstructure:"duration"`
}

// AppsConfig contains user overrides for the application alias table. Keys
// are friendly names, values the launch command. Merged over the built-in
// table at executor construction.
type AppsConfig struct {
	Aliases map[string]string `yaml:"aliases" mapstructure:"aliases"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Verbose: false,
		},
		Commands: CommandsConfig{
			ConfirmDangerous: true,
			ExecutionTimeout: 30,
		},
		Voice: VoiceConfig{
			Enabled:         false,
			Language:        "en-US",
			EnergyThreshold: 300,
		},
		Notifications: NotificationsConfig{
			Enabled:  true,
			Duration: 5,
		},
		Apps: AppsConfig{
			Aliases: map[string]string{},
		},
	}
}

// GetConfigPath resolves the configuration file location: an explicit path
// wins, then a project-local .aria/config.yaml, then the user-scoped file
// under the home directory.
func GetConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return DefaultConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigPath
	}
	return filepath.Join(home, DefaultConfigPath)
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	defer func() {
		if err := encoder.Close(); err != nil {
			logger.Error("Failed to close YAML encoder", "error", err)
		}
	}()

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logger.Debug("Saved config", "path", configPath)
	return nil
}
