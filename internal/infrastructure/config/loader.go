package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. HN_DATABASE_PASSWORD
const EnvPrefix = "HN"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configuration for the environment named by HN_ENV
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = loadDotEnvFile()

	return LoadConfigFor(getEnvironment(), ConfigPaths...)
}

// LoadConfigFor loads configs/<env>.yaml from the given paths, then applies
// HN_ prefixed environment overrides
func LoadConfigFor(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// loadDotEnvFile loads the first .env file found
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return errors.New("no .env file found in search paths")
}

// setDefaults registers every key so that AutomaticEnv can override it
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)
	v.SetDefault("server.writeTimeout", 15)
	v.SetDefault("server.idleTimeout", 60)
	v.SetDefault("server.readHeaderTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 10)
	v.SetDefault("server.allowedOrigins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30)
	v.SetDefault("database.connMaxIdleTime", 15)
	v.SetDefault("database.queryTimeout", 5)
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1)
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.seedDemoUsers", false)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.maxSizeMB", 100)
	v.SetDefault("logger.maxBackups", 5)
	v.SetDefault("logger.maxAgeDays", 28)
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.issuer", "hotfinet")
	v.SetDefault("auth.tokenTTL", 1440)
	v.SetDefault("auth.bcryptCost", 12)

	v.SetDefault("ledger.welcomeBonus", 1000)
	v.SetDefault("ledger.historyDefaultLimit", 50)
	v.SetDefault("ledger.historyMaxLimit", 200)

	v.SetDefault("request.minMB", 50)
	v.SetDefault("request.expireAfter", 0)
	v.SetDefault("request.sweepInterval", 60)
	v.SetDefault("request.sweepBatch", 100)

	v.SetDefault("notification.dispatchTimeout", 5)
	v.SetDefault("notification.streamEnabled", false)
	v.SetDefault("notification.stream", "hotfinet.notifications")
	v.SetDefault("notification.streamMaxLen", 10000)
	v.SetDefault("notification.feedBuffer", 16)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.poolSize", 20)
	v.SetDefault("redis.dialTimeout", 5)
	v.SetDefault("redis.readTimeout", 3)
	v.SetDefault("redis.writeTimeout", 3)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.providerTTL", 15)
	v.SetDefault("cache.keyPrefix", "hotfinet")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.poolInterval", 15)
}

// getEnvironment determines the environment from HN_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processDurations converts the plain numbers in the config files to durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Auth.TokenTTL = time.Duration(config.Auth.TokenTTL) * time.Minute

	config.Request.ExpireAfter = time.Duration(config.Request.ExpireAfter) * time.Minute
	config.Request.SweepInterval = time.Duration(config.Request.SweepInterval) * time.Second

	config.Notification.DispatchTimeout = time.Duration(config.Notification.DispatchTimeout) * time.Second

	config.Redis.DialTimeout = time.Duration(config.Redis.DialTimeout) * time.Second
	config.Redis.ReadTimeout = time.Duration(config.Redis.ReadTimeout) * time.Second
	config.Redis.WriteTimeout = time.Duration(config.Redis.WriteTimeout) * time.Second

	config.Cache.ProviderTTL = time.Duration(config.Cache.ProviderTTL) * time.Second
	config.Metrics.PoolInterval = time.Duration(config.Metrics.PoolInterval) * time.Second
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret is required (set HN_AUTH_JWTSECRET)")
	}
	if c.Environment == Production && len(c.Auth.JWTSecret) < 32 {
		return errors.New("auth.jwtSecret must be at least 32 bytes in production")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTTL must be positive")
	}
	if c.Ledger.WelcomeBonus < 0 {
		return fmt.Errorf("ledger.welcomeBonus must be non-negative, got: %d", c.Ledger.WelcomeBonus)
	}
	if c.Request.MinMB < 50 {
		return fmt.Errorf("request.minMB must be at least 50, got: %d", c.Request.MinMB)
	}
	if c.Request.ExpireAfter < 0 {
		return errors.New("request.expireAfter must be non-negative")
	}
	if c.Notification.StreamEnabled && c.Notification.Stream == "" {
		return errors.New("notification.stream is required when the stream is enabled")
	}
	if c.UsesRedis() && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when redis features are enabled")
	}
	return nil
}
