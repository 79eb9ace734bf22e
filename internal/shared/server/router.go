package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jd-backend/internal/analysis"
	"jd-backend/internal/extract"
	"jd-backend/internal/llm"
	"jd-backend/internal/llm/gemini"
	"jd-backend/internal/llm/local"
	"jd-backend/internal/shared/config"
	"jd-backend/internal/shared/metrics"
	"jd-backend/internal/shared/server/middleware"
	"jd-backend/internal/shared/server/respond"
	"jd-backend/internal/shared/telemetry"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(analysisRateLimits()),
	)

	// Dependencies
	providers := buildProviders(cfg)
	analysisSvc := analysis.NewService(providers, cfg.AnalysisTimeout, cfg.MaxJDLength)
	analysisHandler := analysis.NewHandler(analysisSvc)
	extractHandler := extract.NewHandler()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	analysisHandler.RegisterRoutes(api)
	extractHandler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

// buildProviders assembles the ordered provider chain from configuration:
// local endpoint first when set, hosted Gemini as the fallback.
func buildProviders(cfg config.Config) []llm.Provider {
	var providers []llm.Provider

	if cfg.LocalLLMBaseURL != "" {
		client, err := local.NewClient(cfg.LocalLLMBaseURL, cfg.LocalLLMModel)
		if err != nil {
			log.Printf("skipping local llm provider: %v", err)
		} else {
			providers = append(providers, client)
		}
	}
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("skipping hosted llm provider: %v", err)
		} else {
			providers = append(providers, client)
		}
	}

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	telemetry.Info("server.providers", map[string]any{
		"chain": names,
	})
	return providers
}

// analysisRateLimits throttles the expensive endpoints per client IP;
// everything else passes through.
func analysisRateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"GENERATE": {Rate: 0.5, Burst: 5},
			"PARSE":    {Rate: 1, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return ""
			}
			switch c.FullPath() {
			case "/api/v1/generate":
				return "GENERATE"
			case "/api/v1/parse-pdf":
				return "PARSE"
			default:
				return ""
			}
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
