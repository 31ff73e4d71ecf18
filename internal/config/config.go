// Package config loads the tool configuration from a yaml file and/or
// environment variables.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jakopako/pinpoint/internal/fetch"
	"github.com/jakopako/pinpoint/internal/output"
	"github.com/jakopako/pinpoint/internal/selector"
	"gopkg.in/yaml.v3"
)

// Config defines the overall structure of the pinpoint configuration.
// Values are taken from a config yml file or environment variables or both.
type Config struct {
	Fetcher   fetch.FetcherConfig `yaml:"fetcher"`
	Generator selector.Options    `yaml:"generator"`
	Writer    output.WriterConfig `yaml:"writer"`
	HistoryDB string              `yaml:"history_db" env:"PINPOINT_HISTORY_DB" env-default:"pinpoint-history.db"`
}

// String renders the effective configuration as yaml. Used by debug logging.
func (c *Config) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<invalid config: %v>", err)
	}
	return string(b)
}

// NewConfigFromFile reads the configuration at path. A missing fetcher type
// falls back to the default.
func NewConfigFromFile(path string) (*Config, error) {
	var config Config
	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, err
	}
	if config.Fetcher.Type == "" {
		config.Fetcher.Type = fetch.DefaultFetcherType()
	}
	return &config, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return &Config{HistoryDB: "pinpoint-history.db"}
	}
	if cfg.Fetcher.Type == "" {
		cfg.Fetcher.Type = fetch.DefaultFetcherType()
	}
	return cfg
}
