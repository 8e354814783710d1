package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"resume-optimizer/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	DatabaseURL     string
	CORSAllowOrigin []string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	LLMProvider     string
	LLMModel        string
	AnthropicAPIKey string
	AnthropicURL    string
	OpenAIAPIKey    string
	LLMTimeout      time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	RedisURL     string
	JDCacheTTL   time.Duration
	FetchTimeout time.Duration

	ChromePath        string
	RenderTimeout     time.Duration
	BrandPrefix       string
	TargetBulletCount int
	ResumeLimit       int
}

// Load reads configuration from .env files and the environment with defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")
	v.SetDefault("OBJECT_STORE", "local")
	v.SetDefault("LOCAL_STORE_DIR", "./data")
	v.SetDefault("AWS_REGION", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_PREFIX", "resumes")
	v.SetDefault("SSE_KMS_KEY_ID", "")
	v.SetDefault("LLM_PROVIDER", "anthropic")
	v.SetDefault("LLM_MODEL", "")
	v.SetDefault("ANTHROPIC_API_KEY", "")
	v.SetDefault("ANTHROPIC_BASE_URL", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("LLM_TIMEOUT", "120s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JD_CACHE_TTL", "24h")
	v.SetDefault("FETCH_TIMEOUT", "30s")
	v.SetDefault("CHROME_PATH", "")
	v.SetDefault("RENDER_TIMEOUT", "60s")
	v.SetDefault("BRAND_PREFIX", "Tailored")
	v.SetDefault("TARGET_BULLET_COUNT", 5)
	v.SetDefault("RESUME_LIMIT", 50)
	return v
}

// FromViper builds a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) Config {
	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		telemetry.Error("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:              v.GetString("PORT"),
		Env:               env,
		LogLevel:          v.GetString("LOG_LEVEL"),
		DatabaseURL:       dbURL,
		CORSAllowOrigin:   splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		ObjectStoreType:   normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:     v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:         v.GetString("AWS_REGION"),
		S3Bucket:          v.GetString("S3_BUCKET"),
		S3Prefix:          v.GetString("S3_PREFIX"),
		SSEKMSKeyID:       v.GetString("SSE_KMS_KEY_ID"),
		LLMProvider:       normalizeProvider(v.GetString("LLM_PROVIDER")),
		LLMModel:          v.GetString("LLM_MODEL"),
		AnthropicAPIKey:   v.GetString("ANTHROPIC_API_KEY"),
		AnthropicURL:      v.GetString("ANTHROPIC_BASE_URL"),
		OpenAIAPIKey:      v.GetString("OPENAI_API_KEY"),
		LLMTimeout:        positiveDuration(v.GetDuration("LLM_TIMEOUT"), 120*time.Second),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TokenTTL:          positiveDuration(v.GetDuration("TOKEN_TTL"), 24*time.Hour),
		RedisURL:          v.GetString("REDIS_URL"),
		JDCacheTTL:        positiveDuration(v.GetDuration("JD_CACHE_TTL"), 24*time.Hour),
		FetchTimeout:      positiveDuration(v.GetDuration("FETCH_TIMEOUT"), 30*time.Second),
		ChromePath:        v.GetString("CHROME_PATH"),
		RenderTimeout:     positiveDuration(v.GetDuration("RENDER_TIMEOUT"), 60*time.Second),
		BrandPrefix:       strings.TrimSpace(v.GetString("BRAND_PREFIX")),
		TargetBulletCount: positiveInt(v.GetInt("TARGET_BULLET_COUNT"), 5),
		ResumeLimit:       positiveInt(v.GetInt("RESUME_LIMIT"), 50),
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "none", "off", "disabled":
		return "none"
	default:
		return "anthropic"
	}
}

func positiveDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func positiveInt(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
