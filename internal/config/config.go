package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server,omitempty"`
	Store   StoreConfig   `yaml:"store,omitempty"`
	AniList AniListConfig `yaml:"anilist,omitempty"`
	Jobs    JobsConfig    `yaml:"jobs,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Addr            string        `yaml:"addr,omitempty" validate:"required,hostname_port"`
	ReadTimeout     time.Duration `yaml:"read_timeout,omitempty" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout,omitempty" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty" validate:"gt=0"`
}

// StoreConfig contains card store settings
type StoreConfig struct {
	Dir string `yaml:"dir,omitempty" validate:"required"`
}

// AniListConfig contains AniList API settings
type AniListConfig struct {
	Endpoint string `yaml:"endpoint,omitempty" validate:"omitempty,url"`
}

// JobsConfig contains background job settings
type JobsConfig struct {
	// RefreshSchedule is a 5-field cron expression.  Empty disables the refresh job.
	RefreshSchedule string `yaml:"refresh_schedule,omitempty"`
}

// LoggingConfig contains log related settings
type LoggingConfig struct {
	Level    string `yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	FilePath string `yaml:"file_path,omitempty"`
}

// Load builds a configuration struct from multiple sources using these steps:
// 1. Create a base config with default values
// 2. If no config file exists on disk, save the default config to that location
// 3. Load & merge the config file, overwriting any defaults with user-specified values
// 4. Apply environment variable overrides
// 5. Validate the result
func Load() (*Config, error) {
	// 1. Start with base defaults
	cfg := createBaseDefaultConfig()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to determine config file path: %w", err)
	}

	// 2. If no config file exists on disk, then write a default one
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		// If there is an error saving the default config, then still let the application startup using the defaults.
		_ = save(cfg, configPath)
	}

	// 3. Load the config from disk and merge it into the base defaults
	fileConfig, err := loadFromDisk(configPath)
	if err != nil {
		return nil, err
	}
	// Overrides the config with any values coming from the loaded file
	if err = mergo.Merge(cfg, fileConfig, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging config loaded from disk: %w", err)
	}

	// 4. Apply the environment variable overrides which take precedence
	applyEnvVarOverrides(cfg)

	// 5. Reject configurations the server cannot run with
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the assembled config against its constraints
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// loadFromDisk loads the YAML config from disk and returns the unmarshalled Config
func loadFromDisk(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	return cfg, nil
}

func save(cfg *Config, configPath string) error {
	// Create config dir if not exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// getConfigPath returns the path to the config file.  Uses the environment variable override if present, else falls
// back to a config file next to the working directory, which suits container deployments.
func getConfigPath() (string, error) {
	configPath := os.Getenv("ANICARDS_CONFIG_PATH")
	if configPath != "" {
		return configPath, nil
	}
	return filepath.Join(".", "anicards.yaml"), nil
}

// createBaseDefaultConfig creates a config with all default values
func createBaseDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Store: StoreConfig{
			Dir: filepath.Join(".", "data"),
		},
		AniList: AniListConfig{},
		Jobs: JobsConfig{
			RefreshSchedule: "0 3 * * *",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
