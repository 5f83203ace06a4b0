// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"dr-sheets-api/internal/application/formula"
	"dr-sheets-api/internal/config"
	"dr-sheets-api/internal/infrastructure/llm"
	"dr-sheets-api/internal/infrastructure/persistence/memory"
	"dr-sheets-api/internal/infrastructure/persistence/redis"
	"dr-sheets-api/internal/interfaces/http/handler"
	"dr-sheets-api/internal/interfaces/http/router"
	"dr-sheets-api/pkg/logger"
)

// App 已装配完成的应用
type App struct {
	Router *router.Router
}

// InitializeApp 按配置装配应用依赖，返回应用与清理函数
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	log := logger.Default()

	// 限流计数存储：生产使用 Redis，关闭时退化为进程内存
	var (
		limiter     formula.RateLimiter
		redisClient *redis.Client
		cleanup     = func() {}
	)
	if cfg.Cache.Redis.Enabled {
		client, err := redis.NewClient(&cfg.Cache.Redis)
		if err != nil {
			return nil, nil, err
		}
		redisClient = client
		cleanup = func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close redis client", "error", err)
			}
		}
		limiter = redis.NewRateLimiter(client, cfg.RateLimit.Limit, cfg.RateLimit.Window, cfg.RateLimit.KeyPrefix)
	} else {
		log.Warn("redis disabled, rate limit counting falls back to process memory",
			"limit", cfg.RateLimit.Limit,
			"window", cfg.RateLimit.Window.String(),
		)
		limiter = memory.NewRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	// 生成服务
	geminiClient := llm.NewGeminiClient(&cfg.LLM.Gemini)
	generator := formula.NewGenerator(limiter, geminiClient)

	// HTTP 处理器与路由
	handlers := router.Handlers{
		Formula:  handler.NewFormulaHandler(generator, cfg.RateLimit.FallbackClientID),
		Solution: handler.NewSolutionHandler(),
		Health:   handler.NewHealthHandler(redisClient),
	}

	app := &App{
		Router: router.New(cfg, handlers),
	}
	return app, cleanup, nil
}
