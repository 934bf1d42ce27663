package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	Env   string
	LLM   LLMConfig
	Figma FigmaConfig
	Cache CacheConfig
}

type LLMConfig struct {
	APIKey  string
	Model   string
	RPS     float64
	Burst   int
	Timeout time.Duration
}

type FigmaConfig struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

type CacheConfig struct {
	MemoryEntries int
	TTL           time.Duration
	// Durable backend, first configured wins: Postgres > S3 > disk > none.
	PostgresDSN string
	S3          S3Config
	DiskRoot    string
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Overrides are runtime values (flags) that win over file and environment.
type Overrides struct {
	Port string
}

// Load builds the process configuration once, with precedence
// defaults < .env file < environment < overrides.
func Load(ov Overrides) (*Config, error) {
	_ = godotenv.Load()

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	cfg := defaults(env)
	cfg.Env = env

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Port = normalizePort(v)
	}
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("LLM_MODEL")); v != "" {
		cfg.LLM.Model = v
	}
	if f, ok := envFloat("LLM_RPS"); ok {
		cfg.LLM.RPS = f
	}
	if n, ok := envInt("LLM_BURST"); ok {
		cfg.LLM.Burst = n
	}
	if d, ok := envSeconds("LLM_TIMEOUT_SECONDS"); ok {
		cfg.LLM.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("FIGMA_TOKEN")); v != "" {
		cfg.Figma.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("FIGMA_BASE_URL")); v != "" {
		cfg.Figma.BaseURL = v
	}
	if d, ok := envSeconds("FIGMA_TIMEOUT_SECONDS"); ok {
		cfg.Figma.Timeout = d
	}
	if n, ok := envInt("CACHE_MEMORY_ENTRIES"); ok {
		cfg.Cache.MemoryEntries = n
	}
	if d, ok := envSeconds("CACHE_TTL_SECONDS"); ok {
		cfg.Cache.TTL = d
	}
	if v := strings.TrimSpace(os.Getenv("CACHE_PG_DSN")); v != "" {
		cfg.Cache.PostgresDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("CACHE_DISK_ROOT")); v != "" {
		cfg.Cache.DiskRoot = v
	}
	cfg.Cache.S3 = loadS3Config(env, cfg.Cache.S3)

	if v := strings.TrimSpace(ov.Port); v != "" {
		cfg.Port = normalizePort(v)
	}
	return &cfg, nil
}

func loadS3Config(env string, base S3Config) S3Config {
	out := base
	if v := strings.TrimSpace(os.Getenv("CACHE_S3_ENDPOINT")); v != "" {
		out.Endpoint = v
	} else if strings.EqualFold(env, "local") {
		out.Endpoint = firstNonEmpty(strings.TrimSpace(os.Getenv("CACHE_MINIO_ENDPOINT")), out.Endpoint)
	}
	out.Region = firstNonEmpty(strings.TrimSpace(os.Getenv("CACHE_S3_REGION")), out.Region, "us-east-1")
	out.AccessKey = firstNonEmpty(strings.TrimSpace(os.Getenv("CACHE_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER")), out.AccessKey)
	out.SecretKey = firstNonEmpty(strings.TrimSpace(os.Getenv("CACHE_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD")), out.SecretKey)
	out.Bucket = firstNonEmpty(strings.TrimSpace(os.Getenv("CACHE_S3_BUCKET")), out.Bucket, "ticketsmith-cache")
	if raw := strings.TrimSpace(os.Getenv("CACHE_S3_USE_SSL")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			out.UseSSL = v
		}
	}
	return out
}

func normalizePort(v string) string {
	if strings.HasPrefix(v, ":") {
		return v
	}
	return ":" + v
}

func envFloat(key string) (float64, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envSeconds(key string) (time.Duration, bool) {
	n, ok := envInt(key)
	if !ok || n <= 0 {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
