package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the full service configuration.
type Config struct {
	Storage struct {
		Path     string `yaml:"path"`
		Database string `yaml:"database"`
	} `yaml:"storage"`
	Server struct {
		Port          string `yaml:"port"`
		MaxUploadSize int64  `yaml:"max_upload_size"`
	} `yaml:"server"`
	Logging struct {
		Requests bool `yaml:"requests"`
	} `yaml:"logging"`
}

// Load reads the config file (path from HOMEDRIVE_CONFIG, default
// config.yaml) and applies environment overrides. A missing or broken
// file falls back to defaults.
func Load() *Config {
	configPath := Path()

	data, err := os.ReadFile(configPath)
	if err != nil {
		log.Printf("Failed to read config file, using defaults: %v", err)
		return Default()
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		log.Printf("Failed to parse config file, using defaults: %v", err)
		return Default()
	}

	applyEnv(config)
	return config
}

// Path returns the config file location.
func Path() string {
	if envPath := os.Getenv("HOMEDRIVE_CONFIG"); envPath != "" {
		return envPath
	}
	return "config.yaml"
}

// Default returns the built-in configuration.
func Default() *Config {
	config := &Config{}
	config.Storage.Path = "./data/blobs"
	config.Storage.Database = "./data/homedrive.db"
	config.Server.Port = "8080"
	config.Server.MaxUploadSize = 512 << 20
	config.Logging.Requests = true
	applyEnv(config)
	return config
}

func applyEnv(config *Config) {
	if port := os.Getenv("HOMEDRIVE_PORT"); port != "" {
		config.Server.Port = port
	}
	if path := os.Getenv("HOMEDRIVE_STORAGE_PATH"); path != "" {
		config.Storage.Path = path
	}
	if db := os.Getenv("HOMEDRIVE_DATABASE"); db != "" {
		config.Storage.Database = db
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path must not be empty")
	}
	if c.Storage.Database == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if c.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}
	return nil
}
