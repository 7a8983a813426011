package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	AppEnv         string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	SwaggerHost    string
	AllowedOrigins []string

	GridlinesAPIURL string
	GridlinesAPIKey string
	DataGovAPIURL   string
	DataGovAPIKey   string
	DefaultState    string

	GeocoderURL       string
	GeocoderUserAgent string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	// AuthRateLimit is the number of auth requests allowed per client IP per minute.
	AuthRateLimit   int
	OutboundTimeout time.Duration
	ResetDB         bool
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		MySQLDSN:       getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/smartvegis?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),

		GridlinesAPIURL: getEnv("GRIDLINES_API_URL", "https://api.gridlines.io/fssai-api/fetch-license"),
		GridlinesAPIKey: os.Getenv("GRIDLINES_API_KEY"),
		DataGovAPIURL:   getEnv("DATA_GOV_API_URL", "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"),
		DataGovAPIKey:   getEnv("DATA_GOV_API_KEY", "579b464db66ec23bdd000001cdd3946e44ce4aad7209ff7b23ac571b"),
		DefaultState:    getEnv("DEFAULT_STATE", "Maharashtra"),

		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "smartvegis-api/1.0"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET", "smartvegis"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioPublicURL: os.Getenv("MINIO_PUBLIC_URL"),

		AuthRateLimit:   getEnvInt("AUTH_RATE_LIMIT", 20),
		OutboundTimeout: time.Duration(getEnvInt("OUTBOUND_TIMEOUT_SECONDS", 10)) * time.Second,
		ResetDB:         getEnvBool("RESET_DB", false),
	}
}

// IsProduction reports whether the service runs in production mode.
// Outside production, failed license lookups fall back to synthetic data.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
