package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Ticketing TicketingConfig
	SMTP      SMTPConfig
	HTTP      HTTPConfig
	Log       LogConfig
	Cleanup   CleanupConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds session token settings
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// TicketingConfig holds ticket lifecycle settings
type TicketingConfig struct {
	// RefundLockHours is the no-refund window before an event starts
	RefundLockHours int
	// TokenMaxAge is how long a ticket verification token stays valid
	TokenMaxAge time.Duration
	// PurchaseCooldown is the advisory anti-double-submit window
	PurchaseCooldown time.Duration
	// VerifyBaseURL is the public base for verification URLs in QR codes
	VerifyBaseURL string
}

// RefundLock returns the refund lock window as a duration
func (c TicketingConfig) RefundLock() time.Duration {
	return time.Duration(c.RefundLockHours) * time.Hour
}

// SMTPConfig holds outbound mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	CORSAllowOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// CleanupConfig holds past-event cleanup settings
type CleanupConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
//  1. Environment variables with CITYTICKETS_ prefix
//  2. config.toml
//  3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("CITYTICKETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults plus env carry us
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "citytickets")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "citytickets")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "citytickets")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxopenconns", 25)
	v.SetDefault("database.maxidleconns", 5)
	v.SetDefault("database.connmaxlifetime", 30)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", 24*time.Hour)
	v.SetDefault("jwt.issuer", "citytickets")

	v.SetDefault("ticketing.refundlockhours", 2)
	v.SetDefault("ticketing.tokenmaxage", 8760*time.Hour) // one year
	v.SetDefault("ticketing.purchasecooldown", 5*time.Second)
	v.SetDefault("ticketing.verifybaseurl", "http://localhost:8080")

	v.SetDefault("smtp.host", "localhost")
	v.SetDefault("smtp.port", 25)
	v.SetDefault("smtp.from", "no-reply@citytickets.kz")

	v.SetDefault("http.readtimeout", 15*time.Second)
	v.SetDefault("http.writetimeout", 15*time.Second)
	v.SetDefault("http.idletimeout", 60*time.Second)
	v.SetDefault("http.corsalloworigins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("cleanup.enabled", true)
	v.SetDefault("cleanup.interval", time.Hour)
}

func validate(cfg *Config) error {
	if cfg.JWT.Secret == "" {
		if cfg.App.Env == "production" {
			return fmt.Errorf("jwt.secret must be set in production")
		}
		cfg.JWT.Secret = "development-secret-do-not-use"
	}
	if cfg.Ticketing.RefundLockHours < 0 {
		return fmt.Errorf("ticketing.refundlockhours cannot be negative")
	}
	if cfg.Ticketing.TokenMaxAge <= 0 {
		return fmt.Errorf("ticketing.tokenmaxage must be positive")
	}
	return nil
}
