package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DataFile      string `yaml:"data_file" mapstructure:"data_file"`
	GradingScheme string `yaml:"grading_scheme" mapstructure:"grading_scheme"`
	ExportDir     string `yaml:"export_dir" mapstructure:"export_dir"`
	Theme         string `yaml:"theme" mapstructure:"theme"`
	Backup        bool   `yaml:"backup" mapstructure:"backup"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	return &Config{
		DataFile:  "students.csv",
		ExportDir: ".",
		Theme:     "green",
		Backup:    true,
	}
}

// ConfigPath returns where a user config file is expected to live.
func ConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gradebook", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gradebook", "config.yaml")
}

// Load reads configuration from file if given, otherwise from the
// usual search paths, applying defaults and GRADEBOOK_* environment
// overrides. A missing config file is fine; the defaults stand.
func Load(file string) (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if file != "" {
		viper.SetConfigFile(file)
	} else {
		// Search paths
		viper.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "gradebook"))
		}
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "gradebook"))
	}

	// Environment variables
	viper.SetEnvPrefix("GRADEBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
		// Config file not found; ignore and use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Manual expansion for paths in the config file
	cfg.DataFile = expandEnv(cfg.DataFile)
	cfg.GradingScheme = expandEnv(cfg.GradingScheme)
	cfg.ExportDir = expandEnv(cfg.ExportDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors and backfills the
// fields that have safe defaults.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("config: data_file is required")
	}
	validThemes := map[string]bool{"green": true, "amber": true, "blue": true}
	if !validThemes[c.Theme] {
		return fmt.Errorf("config: theme %q is unknown (must be green, amber, or blue)", c.Theme)
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	return nil
}
