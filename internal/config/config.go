// Package config provides configuration management for the vidnotes agent.
// Values come from an optional config file and VIDNOTES_* environment
// variables, falling back to sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultPort         = 8787
	DefaultLogLevel     = "info"
	DefaultPollInterval = time.Second

	EnvPrefix = "VIDNOTES"

	// Keys, also readable as VIDNOTES_<KEY> from the environment
	KeyPort         = "port"
	KeyLogLevel     = "log_level"
	KeyExportDir    = "export_dir"
	KeyPollInterval = "poll_interval"
	KeyHeadless     = "headless"
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	ExportDir() string
	PollInterval() time.Duration
	Headless() bool
}

// EnvConfig is a Config resolved from file and environment
type EnvConfig struct {
	port         int
	logLevel     string
	exportDir    string
	pollInterval time.Duration
	headless     bool
}

// New reads configuration from the environment only.
func New() (*EnvConfig, error) {
	return Load("")
}

// Load reads the config file at path, if given, with environment variable
// overrides on top.
func Load(path string) (*EnvConfig, error) {
	v := viper.New()

	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyExportDir, defaultExportDir())
	v.SetDefault(KeyPollInterval, DefaultPollInterval)
	v.SetDefault(KeyHeadless, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*EnvConfig, error) {
	port := v.GetInt(KeyPort)
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", envName(KeyPort))
	}

	interval := v.GetDuration(KeyPollInterval)
	if interval <= 0 {
		return nil, fmt.Errorf("invalid %s: must be a positive duration", envName(KeyPollInterval))
	}

	exportDir := v.GetString(KeyExportDir)
	if exportDir != "" {
		exportDir = filepath.Clean(exportDir)
	}

	return &EnvConfig{
		port:         port,
		logLevel:     v.GetString(KeyLogLevel),
		exportDir:    exportDir,
		pollInterval: interval,
		headless:     v.GetBool(KeyHeadless),
	}, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// ExportDir returns the directory exports are written to when the request
// names none
func (c *EnvConfig) ExportDir() string {
	return c.exportDir
}

// PollInterval returns how often the player position is sampled
func (c *EnvConfig) PollInterval() time.Duration {
	return c.pollInterval
}

// Headless reports whether to run without the system tray
func (c *EnvConfig) Headless() bool {
	return c.headless
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// defaultExportDir prefers ~/Downloads, then the home directory, then the
// working directory.
func defaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	downloads := filepath.Join(home, "Downloads")
	if info, err := os.Stat(downloads); err == nil && info.IsDir() {
		return downloads
	}
	return home
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
