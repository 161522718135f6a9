package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Blob backend identifiers.
const (
	BlobBackendFile     = "file"
	BlobBackendRedis    = "redis"
	BlobBackendPostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Blob     BlobConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Calendar CalendarConfig
	Jobs     JobsConfig
}

// BlobConfig selects and tunes the snapshot store backend.
type BlobConfig struct {
	Backend string
	Dir     string
	Key     string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// AuthConfig gates the optional JWT perimeter.
type AuthConfig struct {
	Enabled    bool
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CalendarConfig tunes the recurrence engine and seeding behaviour.
type CalendarConfig struct {
	HorizonMonths      int
	MaxOccurrences     int
	SeedDemoEvents     bool
	NormalizeTimeOrder bool
}

// JobsConfig configures background maintenance work.
type JobsConfig struct {
	DigestCron   string
	SnapshotCron string
	SaveRetries  int
	SaveDelay    time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Blob = BlobConfig{
		Backend: strings.ToLower(v.GetString("BLOB_BACKEND")),
		Dir:     v.GetString("BLOB_DIR"),
		Key:     v.GetString("BLOB_KEY"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Auth = AuthConfig{
		Enabled:    v.GetBool("ENABLE_AUTH"),
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Calendar = CalendarConfig{
		HorizonMonths:      v.GetInt("RECURRENCE_HORIZON_MONTHS"),
		MaxOccurrences:     v.GetInt("RECURRENCE_MAX_OCCURRENCES"),
		SeedDemoEvents:     v.GetBool("SEED_DEMO_EVENTS"),
		NormalizeTimeOrder: v.GetBool("NORMALIZE_TIME_ORDER"),
	}

	cfg.Jobs = JobsConfig{
		DigestCron:   v.GetString("DIGEST_CRON"),
		SnapshotCron: v.GetString("SNAPSHOT_CRON"),
		SaveRetries:  v.GetInt("SAVE_RETRIES"),
		SaveDelay:    parseDuration(v.GetString("SAVE_RETRY_DELAY"), time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("BLOB_BACKEND", BlobBackendFile)
	v.SetDefault("BLOB_DIR", "./data")
	v.SetDefault("BLOB_KEY", "calendar-events")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "eventflow")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ENABLE_AUTH", false)
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("RECURRENCE_HORIZON_MONTHS", 12)
	v.SetDefault("RECURRENCE_MAX_OCCURRENCES", 1000)
	v.SetDefault("SEED_DEMO_EVENTS", false)
	v.SetDefault("NORMALIZE_TIME_ORDER", true)

	v.SetDefault("DIGEST_CRON", "0 7 * * *")
	v.SetDefault("SNAPSHOT_CRON", "")
	v.SetDefault("SAVE_RETRIES", 3)
	v.SetDefault("SAVE_RETRY_DELAY", "1s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
