package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	RefreshIntervalSeconds int    `json:"refresh_interval_seconds,omitempty"`
	TickIntervalMillis     int    `json:"tick_interval_ms,omitempty"`
	LogFile                string `json:"log_file,omitempty"`
	LogLevel               string `json:"log_level,omitempty"`
}

const (
	defaultRefreshIntervalSeconds = 15
	defaultTickIntervalMillis     = 75
	defaultLogLevel               = "info"
)

func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMillis) * time.Millisecond
}

// LoadConfig reads ~/.prdash/config.json. A missing file is not an error;
// defaults apply to every field left unset.
func LoadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyConfigDefaults(Config{}), nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return applyConfigDefaults(cfg), nil
}

func SaveConfig(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func applyConfigDefaults(cfg Config) Config {
	if cfg.RefreshIntervalSeconds <= 0 {
		cfg.RefreshIntervalSeconds = defaultRefreshIntervalSeconds
	}
	if cfg.TickIntervalMillis <= 0 {
		cfg.TickIntervalMillis = defaultTickIntervalMillis
	}
	if strings.TrimSpace(cfg.LogFile) == "" {
		cfg.LogFile = defaultLogFile()
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = defaultLogLevel
	}
	return cfg
}

func defaultLogFile() string {
	home := os.Getenv("HOME")
	if strings.TrimSpace(home) == "" {
		return "prdash.log"
	}
	return filepath.Join(home, ".prdash", "prdash.log")
}

func configPath() (string, error) {
	home := os.Getenv("HOME")
	if strings.TrimSpace(home) == "" {
		return "", errors.New("HOME not set")
	}
	return filepath.Join(home, ".prdash", "config.json"), nil
}
