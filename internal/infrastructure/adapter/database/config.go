package database

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/config"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents database configuration
type Config struct {
	Driver          string
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string // file path or DSN for sqlite
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
	LogLevel        string
	RetryAttempts   int
	RetryDelay      time.Duration
}

// FromAppConfig adapts the application configuration to database configuration
func FromAppConfig(conf *config.Config) *Config {
	db := conf.Database
	return &Config{
		Driver:          db.Driver,
		Host:            db.Host,
		Port:            ParsePort(db.Port),
		Username:        db.Username,
		Password:        db.Password,
		Database:        db.Database,
		SSLMode:         db.SSLMode,
		MaxOpenConns:    db.MaxOpenConns,
		MaxIdleConns:    db.MaxIdleConns,
		ConnMaxLifetime: db.ConnMaxLifetime,
		ConnMaxIdleTime: db.ConnMaxIdleTime,
		QueryTimeout:    db.QueryTimeout,
		LogLevel:        db.LogLevel,
		RetryAttempts:   db.RetryAttempts,
		RetryDelay:      db.RetryDelay,
	}
}

// ParsePort converts a port string to int, defaulting to 5432
func ParsePort(port string) int {
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 {
		return 5432
	}
	return p
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.Database == "" {
			return errors.New("database file is required for sqlite")
		}
	case DriverPostgres:
		if c.Host == "" {
			return errors.New("database host is required")
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("invalid port number: %d", c.Port)
		}
		if c.Username == "" {
			return errors.New("database username is required")
		}
		if c.Password == "" {
			return errors.New("database password is required")
		}
		if c.Database == "" {
			return errors.New("database name is required")
		}

		validSSLModes := map[string]bool{
			"disable":     true,
			"require":     true,
			"verify-ca":   true,
			"verify-full": true,
			"prefer":      true,
		}
		if !validSSLModes[c.SSLMode] {
			return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	}

	validLogLevels := map[string]bool{
		"silent": true,
		"debug":  true,
		"info":   true,
		"warn":   true,
		"error":  true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Database
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}
