package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAnalysisTimeout = 30 * time.Second
	defaultMaxJDLength     = 10000
	defaultGeminiModel     = "gemini-2.5-flash"
	defaultLocalModel      = "google/gemma-3n-e4b"
)

// Config holds application configuration. Loaded once at startup and treated
// as immutable for the process lifetime.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	// Hosted provider (Gemini). Empty API key disables the hosted path.
	GeminiAPIKey string
	GeminiModel  string

	// Local provider (OpenAI-compatible endpoint, e.g. LM Studio or llama.cpp
	// server). Empty base URL disables the local path.
	LocalLLMBaseURL string
	LocalLLMModel   string

	AnalysisTimeout time.Duration
	MaxJDLength     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		GeminiAPIKey:    strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:     getEnv("GEMINI_MODEL", defaultGeminiModel),
		LocalLLMBaseURL: strings.TrimSpace(os.Getenv("LOCAL_LLM_BASE_URL")),
		LocalLLMModel:   getEnv("LOCAL_LLM_MODEL", defaultLocalModel),
		AnalysisTimeout: timeoutFromEnv("ANALYSIS_TIMEOUT_SECONDS", defaultAnalysisTimeout),
		MaxJDLength:     intFromEnv("MAX_JD_LENGTH", defaultMaxJDLength),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
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

func timeoutFromEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("invalid %s=%q, using default %s", key, raw, def)
		return def
	}
	return time.Duration(parsed) * time.Second
}

func intFromEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("invalid %s=%q, using default %d", key, raw, def)
		return def
	}
	return parsed
}
