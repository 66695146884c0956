package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/subosito/gotenv"
)

// LoadEnv loads config/envs/.env.<env> into the process environment.
// Values already present in the OS environment win.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment")
	}
}

// Settings collects every tunable of the analysis core. Tier ceilings and
// thresholds are deliberately configuration, not constants: deployments with
// different memory budgets need different caps.
type Settings struct {
	// Model acquisition
	ModelDir         string
	SentimentModelID string
	KeywordModelID   string

	// Analysis
	KeywordTopN  int
	CacheTTL     time.Duration
	CacheMaxSize int

	// Tier selection
	ForceTier          string // "full", "lightweight" or "emergency"; empty means auto-detect
	ForceConstrainedAt int    // batch sizes above this always count as constrained

	// Per-tier item ceilings applied in constrained environments
	CeilingFull        int
	CeilingLightweight int
	CeilingEmergency   int

	// Per-tier input truncation caps, in runes
	TruncateFull        int
	TruncateLightweight int
	TruncateEmergency   int

	// Pause between chunks, yields to the surrounding runtime
	ChunkPause time.Duration
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("[Config] Ignoring non-numeric env value",
			slog.String("key", key),
			slog.String("value", value))
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("[Config] Ignoring unparseable duration",
			slog.String("key", key),
			slog.String("value", value))
		return defaultValue
	}
	return d
}

// FromEnv builds Settings from the environment with production defaults.
func FromEnv() Settings {
	return Settings{
		ModelDir:         getEnv("SENTIBOARD_MODEL_DIR", "./models"),
		SentimentModelID: getEnv("SENTIBOARD_SENTIMENT_MODEL", "nlptown/bert-base-multilingual-uncased-sentiment"),
		KeywordModelID:   getEnv("SENTIBOARD_KEYWORD_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),

		KeywordTopN:  getEnvInt("SENTIBOARD_KEYWORD_TOP_N", 3),
		CacheTTL:     getEnvDuration("SENTIBOARD_CACHE_TTL", time.Hour),
		CacheMaxSize: getEnvInt("SENTIBOARD_CACHE_MAX_SIZE", 1000),

		ForceTier:          getEnv("SENTIBOARD_FORCE_TIER", ""),
		ForceConstrainedAt: getEnvInt("SENTIBOARD_FORCE_CONSTRAINED_AT", 30),

		CeilingFull:        getEnvInt("SENTIBOARD_CEILING_FULL", 200),
		CeilingLightweight: getEnvInt("SENTIBOARD_CEILING_LIGHTWEIGHT", 100),
		CeilingEmergency:   getEnvInt("SENTIBOARD_CEILING_EMERGENCY", 50),

		TruncateFull:        getEnvInt("SENTIBOARD_TRUNCATE_FULL", 1000),
		TruncateLightweight: getEnvInt("SENTIBOARD_TRUNCATE_LIGHTWEIGHT", 500),
		TruncateEmergency:   getEnvInt("SENTIBOARD_TRUNCATE_EMERGENCY", 300),

		ChunkPause: getEnvDuration("SENTIBOARD_CHUNK_PAUSE", 100*time.Millisecond),
	}
}
