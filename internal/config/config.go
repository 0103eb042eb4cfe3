package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	LLM      LLMConfig
	Storage  StorageConfig
	AMQP     AMQPConfig
	Upload   UploadConfig
	Match    MatchConfig
}

type AppConfig struct {
	AppName          string
	Environment      string
	HTTPPort         string
	CORSAllowOrigins string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	RunMigrations bool
	MigrationsDir string
	RunSeeders    bool
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type LLMConfig struct {
	Provider string
	APIKey   string
	APIBase  string
	Model    string
	Timeout  time.Duration
}

// StorageConfig points at an S3-compatible bucket for uploaded CVs. An empty
// Bucket disables object storage.
type StorageConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type UploadConfig struct {
	MaxBytes int
}

// MatchConfig tunes job scoring. DedupeRequirements scores a skill listed
// twice on one job once, at its highest listed level.
type MatchConfig struct {
	DedupeRequirements bool
}

const (
	LLMProviderOpenAI = "openai"
	LLMProviderGemini = "gemini"
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := parseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:          req("APP_NAME"),
		Environment:      req("APP_ENV"),
		HTTPPort:         req("HTTP_PORT"),
		CORSAllowOrigins: optDefault("CORS_ALLOW_ORIGINS", "*"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     optDefault("DB_PORT", "5432"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),

		RunMigrations: optBool("RUN_MIGRATIONS", true),
		MigrationsDir: optDefault("MIGRATIONS_DIR", "migrations"),
		RunSeeders:    optBool("RUN_SEEDERS", false),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
		TTL:      optDuration("REDIS_TTL", 600*time.Second),
	}

	cfg.LLM = LLMConfig{
		Provider: strings.ToLower(optDefault("LLM_PROVIDER", LLMProviderOpenAI)),
		APIKey:   opt("LLM_API_KEY"),
		APIBase:  opt("LLM_API_BASE"),
		Model:    opt("LLM_MODEL"),
		Timeout:  optDuration("LLM_TIMEOUT", 60*time.Second),
	}
	if cfg.LLM.Provider != LLMProviderOpenAI && cfg.LLM.Provider != LLMProviderGemini {
		invalid = append(invalid, "LLM_PROVIDER")
	}

	cfg.Storage = StorageConfig{
		Bucket:    opt("S3_BUCKET"),
		Region:    optDefault("S3_REGION", "auto"),
		Endpoint:  opt("S3_ENDPOINT"),
		AccessKey: opt("S3_ACCESS_KEY"),
		SecretKey: opt("S3_SECRET_KEY"),
	}

	cfg.AMQP = AMQPConfig{
		URL:      opt("AMQP_URL"),
		Exchange: optDefault("AMQP_EXCHANGE", "skillsync.events"),
	}

	cfg.Upload = UploadConfig{
		MaxBytes: optInt("UPLOAD_MAX_BYTES", 5<<20),
	}

	cfg.Match = MatchConfig{
		DedupeRequirements: optBool("MATCH_DEDUPE_REQUIREMENTS", false),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// parseDuration accepts Go durations ("15m") and bare seconds ("900").
func parseDuration(raw string) (time.Duration, error) {
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("negative duration")
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration")
	}
	return d, nil
}
