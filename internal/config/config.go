package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	// Mode is "stdio" or "http".
	Mode string `yaml:"mode"`
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DataConfig struct {
	// File is the JSON document holding all projects.
	File string `yaml:"file"`
	// BackupDir receives timestamped copies of File.
	BackupDir string `yaml:"backup_dir"`
	// SettingsDB is the SQLite file holding feature settings.
	SettingsDB string `yaml:"settings_db"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Mode: "stdio",
			Host: "127.0.0.1",
			Port: 8080,
		},
		Data: DataConfig{
			File:       "projectdata.json",
			BackupDir:  "backups",
			SettingsDB: "settings.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("ORGANIZER_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if mode := os.Getenv("ORGANIZER_SERVER_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if host := os.Getenv("ORGANIZER_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("ORGANIZER_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ORGANIZER_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if file := os.Getenv("ORGANIZER_DATA_FILE"); file != "" {
		cfg.Data.File = file
	}
	if dir := os.Getenv("ORGANIZER_BACKUP_DIR"); dir != "" {
		cfg.Data.BackupDir = dir
	}
	if db := os.Getenv("ORGANIZER_SETTINGS_DB"); db != "" {
		cfg.Data.SettingsDB = db
	}
	if level := os.Getenv("ORGANIZER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Server.Mode != "stdio" && cfg.Server.Mode != "http" {
		return Config{}, fmt.Errorf("invalid server mode %q (want stdio or http)", cfg.Server.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
