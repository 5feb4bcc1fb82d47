package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"ENV"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32  `mapstructure:"DB_MIN_CONNS"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	Workers        int    `mapstructure:"WORKERS"`
	StrictMode     bool   `mapstructure:"STRICT_MODE"`
	MergeRulesFile string `mapstructure:"MERGE_RULES_FILE"`
	MigrationsDir  string `mapstructure:"MIGRATIONS_DIR"`
	OTLPEndpoint   string `mapstructure:"OTLP_ENDPOINT"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`
}

var keys = []string{
	"PORT",
	"ENV",
	"DATABASE_URL",
	"DB_MAX_CONNS",
	"DB_MIN_CONNS",
	"REDIS_URL",
	"WORKERS",
	"STRICT_MODE",
	"MERGE_RULES_FILE",
	"MIGRATIONS_DIR",
	"OTLP_ENDPOINT",
	"SERVICE_NAME",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("WORKERS", 8)
	v.SetDefault("STRICT_MODE", false)
	v.SetDefault("SERVICE_NAME", "transforms")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the service is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// InMemory reports whether no database is configured, in which case commands
// run against in-memory stores and nothing outlives the process.
func (c *Config) InMemory() bool {
	return c.DatabaseURL == ""
}

// Validate checks that the configuration is safe to run. Production requires
// a database so that identifier mappings are durable.
func (c *Config) Validate() error {
	switch c.Env {
	case "development", "test", "staging", "production":
	default:
		return fmt.Errorf("ENV must be one of development, test, staging, production, got %q", c.Env)
	}
	if c.IsProduction() && c.InMemory() {
		return fmt.Errorf("DATABASE_URL is required in production")
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1, got %d", c.DBMaxConns)
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS (%d), got %d", c.DBMaxConns, c.DBMinConns)
	}
	return nil
}
