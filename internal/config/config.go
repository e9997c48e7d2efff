package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const devLearnerSecret = "dev-learner-secret-change-me"

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	AppTagline  string
	ContentPath string
	Timezone    string

	// Progress store (sqlite, pgx, redis, s3, memory)
	StoreDriver  string
	DBConnection string

	// Redis store
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	// Learner identity (anonymous, per browser)
	LearnerSecret string
	LearnerExpiry time.Duration

	// Content generation (OpenAI-compatible chat completions)
	MistralAPIKey   string
	MistralEndpoint string
	MistralModel    string
	MistralTimeout  time.Duration // 0 means transport default (no timeout)

	// Learn flow sessions
	FlowSessionIdle      time.Duration
	FlowSweepInterval    time.Duration
	FlowMaxQuizQuestions int

	// Observability (optional)
	SentryDSN      string
	MetricsEnabled bool

	// Storage (S3-compatible, only when STORE_DRIVER=s3)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "SkillBloom"),
		AppEnv:      envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:      envString("APP_URL", "http://localhost:8090"),
		Port:        envString("PORT", "8090"),
		AppTagline:  envString("APP_TAGLINE", "Grow a skill five minutes at a time"),
		ContentPath: envString("CONTENT_PATH", "content"),
		Timezone:    envString("TIMEZONE", "Local"),

		// Progress store
		StoreDriver:  envString("STORE_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/skillbloom.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Redis
		RedisHost:     envString("REDIS_HOST", "localhost"),
		RedisPort:     envInt("REDIS_PORT", 6379),
		RedisPassword: envString("REDIS_PASSWORD", ""),
		RedisDB:       envInt("REDIS_DB", 0),

		// Learner identity
		LearnerSecret: envString("LEARNER_SECRET", devLearnerSecret),
		LearnerExpiry: envDuration("LEARNER_EXPIRY", 365*24*time.Hour), // 1 year

		// Content generation (MISTRAL_API_KEY optional: absent means fallback content)
		MistralAPIKey:   envString("MISTRAL_API_KEY", ""),
		MistralEndpoint: envString("MISTRAL_ENDPOINT", "https://api.mistral.ai/v1"),
		MistralModel:    envString("MISTRAL_MODEL", "mistral-small-latest"),
		MistralTimeout:  envDuration("MISTRAL_TIMEOUT", 0),

		// Learn flow
		FlowSessionIdle:      envDuration("FLOW_SESSION_IDLE", 1*time.Hour),
		FlowSweepInterval:    envDuration("FLOW_SWEEP_INTERVAL", 10*time.Minute),
		FlowMaxQuizQuestions: envInt("FLOW_MAX_QUIZ_QUESTIONS", 10),

		// Observability
		SentryDSN:      envString("SENTRY_DSN", ""),
		MetricsEnabled: envBool("METRICS_ENABLED", true),

		// Storage
		S3Region:    envString("S3_REGION", ""),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
	}

	if cfg.StoreDriver == "s3" && (cfg.S3Region == "" || cfg.S3Bucket == "") {
		slog.Error("STORE_DRIVER=s3 requires S3_REGION and S3_BUCKET")
		os.Exit(1)
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	if cfg.MistralAPIKey == "" {
		slog.Warn("MISTRAL_API_KEY not set, lessons and quizzes will use fallback content")
	}

	return cfg
}

// validateProduction ensures secrets are not left at their development defaults.
func validateProduction(cfg *Config) {
	if cfg.LearnerSecret == devLearnerSecret {
		slog.Error("production deployment requires LEARNER_SECRET",
			"hint", "set APP_ENV=development for local testing with the built-in secret")
		os.Exit(1)
	}
}

// Location returns the timezone used to decide what "today" is for daily goals.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config invalid timezone, using local", "value", c.Timezone)
		return time.Local
	}
	return loc
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:     c.AppName,
		AppEnv:      c.AppEnv,
		AppURL:      c.AppURL,
		Port:        c.Port,
		AppTagline:  c.AppTagline,
		Timezone:    c.Timezone,
		StoreDriver: c.StoreDriver,
		S3Endpoint:  c.S3Endpoint,
	}
}
