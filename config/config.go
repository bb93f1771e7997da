package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Provide sane defaults for local development; secrets never default.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT. Secrets have no fallback: an empty value is a startup error.
	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	// Analytical store
	AnalyticsDriver   string // bigquery or duckdb
	BigQueryProject   string
	BigQueryDataset   string
	BigQueryCredsPath string // optional; Application Default Credentials if empty
	DuckDBPath        string
	InteractionTable  string
	AnalyticsTimeout  time.Duration

	// Generation collaborator (Gemini)
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	// Sports metadata / video search
	MLBStatsBaseURL string
	YouTubeAPIKey   string
	YouTubeBaseURL  string
	UpstreamTimeout time.Duration

	// Content ranking
	TopDefaultLimit int
	TopMaxLimit     int

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Migrations
	MigrationsDir string

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables. It returns an error
// when a required secret is absent: signing keys must never fall back to a
// known constant.
func Load() (*Config, error) {
	cfg := &Config{
		AppName: getenv("APP_NAME", "dugout"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "5000"),
		GinMode: getenv("GIN_MODE", "release"),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "dugout"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		JWTAccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTTL:        getdur("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:       getdur("JWT_REFRESH_TTL", 168*time.Hour),

		AnalyticsDriver:   getenv("ANALYTICS_DRIVER", "duckdb"),
		BigQueryProject:   getenv("BIGQUERY_PROJECT", ""),
		BigQueryDataset:   getenv("BIGQUERY_DATASET", "mlb"),
		BigQueryCredsPath: getenv("BIGQUERY_CREDENTIALS_JSON", ""),
		DuckDBPath:        getenv("DUCKDB_PATH", "data/interactions.duckdb"),
		InteractionTable:  getenv("INTERACTION_TABLE", "content_interaction"),
		AnalyticsTimeout:  getdur("ANALYTICS_QUERY_TIMEOUT", 15*time.Second),

		GeminiAPIKey:  getenv("GEMINI_API_KEY", ""),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL: getenv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiTimeout: getdur("GEMINI_TIMEOUT", 5*time.Second),

		MLBStatsBaseURL: getenv("MLB_STATS_BASE_URL", "https://statsapi.mlb.com"),
		YouTubeAPIKey:   getenv("YOUTUBE_API_KEY", ""),
		YouTubeBaseURL:  getenv("YOUTUBE_BASE_URL", "https://www.googleapis.com"),
		UpstreamTimeout: getdur("UPSTREAM_TIMEOUT", 5*time.Second),

		TopDefaultLimit: getint("TOP_DEFAULT_LIMIT", 5),
		TopMaxLimit:     getint("TOP_MAX_LIMIT", 20),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", false),
		HTTPLogEnabled:      getbool("HTTP_LOG_ENABLED", false),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTAccessSecret == "" {
		return errors.New("config: JWT_ACCESS_SECRET is required")
	}
	if c.JWTRefreshSecret == "" {
		return errors.New("config: JWT_REFRESH_SECRET is required")
	}
	if c.AnalyticsDriver != "bigquery" && c.AnalyticsDriver != "duckdb" {
		return errors.New("config: ANALYTICS_DRIVER must be bigquery or duckdb")
	}
	if c.AnalyticsDriver == "bigquery" && c.BigQueryProject == "" {
		return errors.New("config: BIGQUERY_PROJECT is required for the bigquery driver")
	}
	return nil
}

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
