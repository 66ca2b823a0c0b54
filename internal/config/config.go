package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables. One struct, validated at startup; there are no
// parallel development/production blocks.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Queue    QueueConfig
	Backup   BackupConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// QueueConfig controls the moderation event publisher.
type QueueConfig struct {
	ModerationQueue string
	PublishTimeout  time.Duration
	MaxRetries      int
	RetryBaseDelay  time.Duration
}

// BackupConfig controls the scheduled pg_dump job run by the worker.
type BackupConfig struct {
	Enabled  bool
	Dir      string
	CronSpec string
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "MediaReview API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "3008"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "mediareview"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			Expiry: getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		},
		Queue: QueueConfig{
			ModerationQueue: getEnv("QUEUE_MODERATION", "undelete-review-service"),
			PublishTimeout:  getEnvDuration("QUEUE_PUBLISH_TIMEOUT", 5*time.Second),
			MaxRetries:      getEnvInt("QUEUE_PUBLISH_RETRIES", 3),
			RetryBaseDelay:  getEnvDuration("QUEUE_RETRY_BASE_DELAY", 200*time.Millisecond),
		},
		Backup: BackupConfig{
			Enabled:  getEnv("BACKUP_ENABLED", "true") == "true",
			Dir:      getEnv("BACKUP_DIR", "./backups"),
			CronSpec: getEnv("BACKUP_CRON", "0 3 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that cannot safely start.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.Queue.ModerationQueue == "" {
		return fmt.Errorf("QUEUE_MODERATION must not be empty")
	}

	if c.Backup.Enabled && c.Backup.Dir == "" {
		return fmt.Errorf("BACKUP_DIR must be set when backups are enabled")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
