package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration. Values are read from an
// optional YAML file and then overridden by environment variables, so a
// container deployment can run with env vars alone.
type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Auth struct {
		SecretKey     string `yaml:"secret_key"`
		Algorithm     string `yaml:"algorithm"`
		ExpireMinutes int    `yaml:"expire_minutes"`
	} `yaml:"auth"`
	Pagination struct {
		DefaultLimit int `yaml:"default_limit"`
		MaxLimit     int `yaml:"max_limit"`
	} `yaml:"pagination"`
	Server struct {
		Port        string `yaml:"port"`
		Development bool   `yaml:"development"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the YAML file at configPath (skipped if
// the file does not exist), applies environment overrides and validates the
// result.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	config.Database.Host = "localhost"
	config.Database.Port = 5432
	config.Database.SSLMode = "disable"
	config.Auth.Algorithm = "HS256"
	config.Auth.ExpireMinutes = 60
	config.Pagination.DefaultLimit = 100
	config.Pagination.MaxLimit = 500
	config.Server.Port = ":8000"

	if file, err := os.Open(configPath); err == nil {
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	applyEnv(config)

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(c *Config) {
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_DATABASE")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Auth.SecretKey, "JWT_SECRET_KEY")
	setString(&c.Auth.Algorithm, "ALGORITHM")
	setInt(&c.Auth.ExpireMinutes, "ACCESS_TOKEN_EXPIRE_MINUTES")
	setInt(&c.Pagination.DefaultLimit, "DEFAULT_LIMIT")
	setInt(&c.Pagination.MaxLimit, "MAX_LIMIT")
	setString(&c.Server.Port, "SERVER_PORT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c *Config) validate() error {
	if c.Auth.SecretKey == "" {
		return fmt.Errorf("config: JWT secret key is required")
	}
	switch c.Auth.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("config: unsupported signing algorithm %q", c.Auth.Algorithm)
	}
	if c.Auth.ExpireMinutes <= 0 {
		return fmt.Errorf("config: token expire minutes must be positive")
	}
	if c.Pagination.DefaultLimit <= 0 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		return fmt.Errorf("config: invalid pagination limits (default=%d, max=%d)",
			c.Pagination.DefaultLimit, c.Pagination.MaxLimit)
	}
	return nil
}

// DatabaseURL assembles the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User, c.Database.Password,
		c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.SSLMode)
}
