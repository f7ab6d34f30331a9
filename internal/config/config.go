// Package config loads client settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	// ServerBaseURL is the game server, e.g. http://109.74.205.63:12345.
	ServerBaseURL string `yaml:"server-base-url" env:"CHESS_SERVER_URL"`
	// GameID selects which game this client plays.
	GameID uint32 `yaml:"game-id" env:"CHESS_GAME_ID"`

	RefreshInterval time.Duration `yaml:"refresh-interval" env:"CHESS_REFRESH_INTERVAL" env-default:"500ms"`
	RequestTimeout  time.Duration `yaml:"request-timeout" env:"CHESS_REQUEST_TIMEOUT" env-default:"10s"`
}

// Load reads the config file at path when it exists, then applies
// environment overrides. A missing file is fine; a missing server URL or
// game id is not.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			return cfg, cfg.validate()
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.ServerBaseURL == "" {
		return errors.New("server base URL is required (CHESS_SERVER_URL)")
	}
	if c.GameID == 0 {
		return errors.New("game id is required (CHESS_GAME_ID)")
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 500 * time.Millisecond
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
	return nil
}
