package config

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/kastheco/feedr/log"
)

const (
	ConfigFileName  = "config.json"
	SidebarFileName = "sidebar.toml"
	AuditDBFileName = "audit.db"
	defaultUsername = "Username"
)

// configDirOverride lets tests redirect the config directory.
var configDirOverride string

// GetConfigDir returns the path to the application's configuration directory,
// ~/.config/feedr.
func GetConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "feedr"), nil
}

// Config represents the application configuration
type Config struct {
	// Username is shown on the account button in the sidebar footer.
	Username string `json:"username" env:"USERNAME, overwrite"`
	// Debug enables verbose logging.
	Debug bool `json:"debug,omitempty" env:"DEBUG, overwrite"`
	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	// Defaults to true when not set.
	TelemetryEnabled *bool `json:"telemetry_enabled,omitempty"`
	// AuditLogEnabled controls whether sidebar intents are recorded in the
	// SQLite audit log. Defaults to true when not set.
	AuditLogEnabled *bool `json:"audit_log_enabled,omitempty"`
	// MetricsAddr is the listen address of the Prometheus endpoint
	// (e.g. "127.0.0.1:9464"). Empty disables it.
	MetricsAddr string `json:"metrics_addr,omitempty" env:"METRICS_ADDR, overwrite"`
	// SidebarFile overrides the location of sidebar.toml.
	SidebarFile string `json:"sidebar_file,omitempty" env:"SIDEBAR_FILE, overwrite"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	trueVal := true
	auditVal := true
	return &Config{
		Username: func() string {
			u, err := user.Current()
			if err != nil || u == nil || u.Username == "" {
				log.WarningLog.Printf("failed to get current user: %v", err)
				return defaultUsername
			}
			return u.Username
		}(),
		TelemetryEnabled: &trueVal,
		AuditLogEnabled:  &auditVal,
	}
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return true
	}
	return *c.TelemetryEnabled
}

// IsAuditLogEnabled returns whether the audit log is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsAuditLogEnabled() bool {
	if c.AuditLogEnabled == nil {
		return true
	}
	return *c.AuditLogEnabled
}

// SidebarPath returns the sidebar configuration file to load.
func (c *Config) SidebarPath() (string, error) {
	if c.SidebarFile != "" {
		return c.SidebarFile, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SidebarFileName), nil
}

// AuditDBPath returns the location of the audit log database.
func AuditDBPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AuditDBFileName), nil
}

// LoadConfig reads config.json, creating it with defaults on first run, then
// applies FEEDR_* environment overrides. It never fails: problems are logged
// and defaults are used.
func LoadConfig() *Config {
	cfg := loadConfigFile()
	if err := ApplyEnv(cfg); err != nil {
		log.WarningLog.Printf("failed to apply environment overrides: %v", err)
	}
	return cfg
}

func loadConfigFile() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := SaveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}
	if config.Username == "" {
		config.Username = defaultUsername
	}
	return &config
}

// SaveConfig writes config to config.json in the config directory.
func SaveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}
