package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
	"voicedetect/config"
	"voicedetect/internal/cache"
	detection "voicedetect/internal/config"
	"voicedetect/internal/service"
	"voicedetect/internal/transport/rest"

	"github.com/redis/go-redis/v9"
)

// App wires configuration, services and the HTTP router together
type App struct {
	Handler  http.Handler
	Verdicts cache.VerdictCache
	redis    *redis.Client
}

// New builds the application. Redis is only contacted when an address is configured.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if _, err := rdb.Ping(pingCtx).Result(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		log.Println("Connected to Redis")

		a.redis = rdb
		a.Verdicts = cache.NewVerdictCache(rdb)
	} else {
		log.Println("REDIS_URI not set, keeping verdict counters in memory")
		a.Verdicts = cache.NewMemoryVerdictCache()
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.APIKey)
	analyzer := service.NewAnalyzerService(detection.DefaultDetectionConfig())
	detectSvc := service.NewDetectionService(analyzer, a.Verdicts, cfg.TempDir, cfg.AnalysisTimeout)

	a.Handler = rest.NewRouter(&rest.Container{
		AuthService:      authSvc,
		DetectionService: detectSvc,
		APIKeyHeader:     cfg.APIKeyHeader,
		MaxRequestBytes:  cfg.MaxRequestBytes,
		AllowedOrigins:   cfg.AllowedOrigins,
	})

	return a, nil
}

// Close releases external connections
func (a *App) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}
