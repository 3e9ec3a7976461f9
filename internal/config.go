package internal

import (
	"fmt"

	"github.com/hbomb79/Siphon/internal/api"
	"github.com/hbomb79/Siphon/internal/download"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
)

// SiphonConfig is the struct used to contain the
// various user config supplied by file, by the
// environment, or manually inside the code.
type SiphonConfig struct {
	Rest     api.RestConfig  `yaml:"rest"`
	Download download.Config `yaml:"download"`
	LogLevel string          `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// Load populates the config from the YAML file at configPath (if
// provided), with environment variables taking precedence. When
// no path is given the config is read from the environment alone.
func (config *SiphonConfig) Load(configPath string) error {
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, config); err != nil {
			return fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	if config.Download.TempDir != "" {
		dir, err := homedir.Expand(config.Download.TempDir)
		if err != nil {
			return fmt.Errorf("failed to expand temp directory %s: %w", config.Download.TempDir, err)
		}
		config.Download.TempDir = dir
	}

	return nil
}
