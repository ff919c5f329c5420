package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// Database session limits applied to every pooled connection
	LockTimeout      time.Duration
	StatementTimeout time.Duration
	DBMaxConns       int32
	MigrationsPath   string

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	DashboardCacheTTL time.Duration

	RateLimit          string // ulule format, e.g. "120-M"
	CORSAllowedOrigins []string

	EnableJobs           bool
	OverdueSweepInterval time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("LOCK_TIMEOUT", "5s")
	viper.SetDefault("STATEMENT_TIMEOUT", "30s")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DASHBOARD_CACHE_TTL", "30s")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("ENABLE_JOBS", true)
	viper.SetDefault("OVERDUE_SWEEP_INTERVAL", "1h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LockTimeout = durationOrDefault("LOCK_TIMEOUT", 5*time.Second)
	cfg.StatementTimeout = durationOrDefault("STATEMENT_TIMEOUT", 30*time.Second)
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	if cfg.DBMaxConns <= 0 {
		log.Printf("Warning: Invalid value for DB_MAX_CONNS (%d). Defaulting to 10.\n", cfg.DBMaxConns)
		cfg.DBMaxConns = 10
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.DashboardCacheTTL = durationOrDefault("DASHBOARD_CACHE_TTL", 30*time.Second)
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Dashboard counts will not be cached.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.EnableJobs = viper.GetBool("ENABLE_JOBS")
	cfg.OverdueSweepInterval = durationOrDefault("OVERDUE_SWEEP_INTERVAL", time.Hour)

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
