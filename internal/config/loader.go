package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrConfiguration wraps every loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Load builds the configuration from, in increasing priority:
//  1. Default values
//  2. The YAML file at configPath (optional)
//  3. Variables from the .env file at envPath (optional, never overriding the real environment)
//  4. BOT_* environment variables and the credential aliases
//
// Empty paths skip the corresponding file.
func Load(configPath, envPath string) (*Config, error) {
	if err := loadDotEnv(envPath); err != nil {
		return nil, fmt.Errorf("%w: failed to load env file: %v", ErrConfiguration, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, key, err)
		}
	}

	if err := readConfigFile(v, configPath); err != nil {
		return nil, fmt.Errorf("%w: failed to load config file: %v", ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	slog.Debug("Configuration loaded",
		"config_path", configPath,
		"ai_provider", cfg.AI.Provider,
		"ai_model", cfg.AI.Model,
		"history_max_lines", cfg.History.MaxLines)

	return cfg, nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("Configuration file not found, using defaults and environment", "path", path)
			return nil
		}
		return err
	}

	v.SetConfigFile(path)
	return v.ReadInConfig()
}

// setDefaults sets default values for optional configuration parameters
func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
