package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable overriding the config path.
const ConfigEnv = "HEXNAV_CONFIG"

// Storage drivers.
const (
	DriverNone     = "none"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Storage selects where navigation snapshots are persisted.
type Storage struct {
	Driver     string         `yaml:"driver"` // none, postgres or sqlite
	Database   DatabaseConfig `yaml:"database"`
	SQLitePath string         `yaml:"sqlite_path"`

	// WarmStart restores the latest stored grid on startup.
	WarmStart bool `yaml:"warm_start"`
}

// DefaultStorage returns Storage with persistence disabled.
func DefaultStorage() Storage {
	return Storage{
		Driver: DriverNone,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "hexnav",
			Password: "hexnav",
			DBName:   "hexnav",
			SSLMode:  "disable",
		},
		SQLitePath: "hexnav.db",
		WarmStart:  true,
	}
}

// ResolvePath returns the config path from the environment, or fallback.
func ResolvePath(fallback string) string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	return fallback
}

// load reads a YAML file over cfg. A missing file keeps cfg unchanged.
func load(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
