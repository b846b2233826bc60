package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment  string             `mapstructure:"environment"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Logger       LoggerConfig       `mapstructure:"logger"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Ledger       LedgerConfig       `mapstructure:"ledger"`
	Request      RequestConfig      `mapstructure:"request"`
	Notification NotificationConfig `mapstructure:"notification"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
	LogLevel        string        `mapstructure:"logLevel"`
	SeedDemoUsers   bool          `mapstructure:"seedDemoUsers"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"` // stdout or a file path
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// AuthConfig contains session token settings
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwtSecret"`
	Issuer     string        `mapstructure:"issuer"`
	TokenTTL   time.Duration `mapstructure:"tokenTTL"` // minutes
	BcryptCost int           `mapstructure:"bcryptCost"`
}

// LedgerConfig contains coin economy settings
type LedgerConfig struct {
	WelcomeBonus        int64 `mapstructure:"welcomeBonus"`
	HistoryDefaultLimit int   `mapstructure:"historyDefaultLimit"`
	HistoryMaxLimit     int   `mapstructure:"historyMaxLimit"`
}

// RequestConfig contains request lifecycle settings
type RequestConfig struct {
	MinMB         int64         `mapstructure:"minMB"`
	ExpireAfter   time.Duration `mapstructure:"expireAfter"`   // minutes, 0 disables expiry
	SweepInterval time.Duration `mapstructure:"sweepInterval"` // seconds
	SweepBatch    int           `mapstructure:"sweepBatch"`
}

// NotificationConfig contains delivery settings
type NotificationConfig struct {
	DispatchTimeout time.Duration `mapstructure:"dispatchTimeout"` // seconds
	StreamEnabled   bool          `mapstructure:"streamEnabled"`
	Stream          string        `mapstructure:"stream"`
	StreamMaxLen    int64         `mapstructure:"streamMaxLen"`
	FeedBuffer      int           `mapstructure:"feedBuffer"`
}

// RedisConfig contains redis connection settings
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"poolSize"`
	DialTimeout  time.Duration `mapstructure:"dialTimeout"`  // seconds
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`  // seconds
	WriteTimeout time.Duration `mapstructure:"writeTimeout"` // seconds
}

// CacheConfig contains provider snapshot cache settings
type CacheConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	ProviderTTL time.Duration `mapstructure:"providerTTL"` // seconds
	KeyPrefix   string        `mapstructure:"keyPrefix"`
}

// MetricsConfig contains prometheus settings
type MetricsConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Path         string        `mapstructure:"path"`
	PoolInterval time.Duration `mapstructure:"poolInterval"` // seconds
}

// UsesRedis reports whether any component needs a redis client
func (c *Config) UsesRedis() bool {
	return c.Notification.StreamEnabled || c.Cache.Enabled
}
