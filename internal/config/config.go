package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DBConfig holds connection settings for one relational store.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"db"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN builds a postgres connection string from the settings.
func (c DBConfig) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, sslmode)
}

// ServerConfig holds settings for the ops HTTP surface.
type ServerConfig struct {
	Port   string `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

// CacheConfig holds lookup cache tuning.
type CacheConfig struct {
	TTLSeconds     int `yaml:"ttl_seconds"`
	CleanupSeconds int `yaml:"cleanup_seconds"`
}

// Config is the full runtime configuration for the warehouse loader.
type Config struct {
	Warehouse DBConfig     `yaml:"warehouse"`
	Lookup    DBConfig     `yaml:"lookup"`
	Server    ServerConfig `yaml:"server"`
	Cache     CacheConfig  `yaml:"cache"`
}

// Load reads a YAML config file. ${VAR} references inside the file are
// expanded from the environment before parsing, so credentials can stay
// out of the file itself.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(raw))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// FromEnv builds a configuration from DW_* / LOOKUP_* environment
// variables when no config file is given.
func FromEnv() *Config {
	cfg := &Config{
		Warehouse: DBConfig{
			Host:     os.Getenv("DW_HOST"),
			Port:     os.Getenv("DW_PORT"),
			User:     os.Getenv("DW_USER"),
			Password: os.Getenv("DW_PASSWORD"),
			Name:     os.Getenv("DW_DB"),
		},
		Lookup: DBConfig{
			Host:     os.Getenv("LOOKUP_HOST"),
			Port:     os.Getenv("LOOKUP_PORT"),
			User:     os.Getenv("LOOKUP_USER"),
			Password: os.Getenv("LOOKUP_PASSWORD"),
			Name:     os.Getenv("LOOKUP_DB"),
		},
		Server: ServerConfig{
			Port:   os.Getenv("SERVER_PORT"),
			APIKey: os.Getenv("API_KEY"),
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 900
	}
	if c.Cache.CleanupSeconds == 0 {
		c.Cache.CleanupSeconds = 1800
	}
	// The lookup store defaults to living alongside the warehouse.
	if c.Lookup.Host == "" {
		c.Lookup = c.Warehouse
	}
}
