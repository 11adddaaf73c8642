// Package app wires configuration, storage, metric providers and the scoring
// service into one runnable application shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/api"
	"github.com/wonny/influroi/internal/api/handlers"
	"github.com/wonny/influroi/internal/infra/cache"
	"github.com/wonny/influroi/internal/infra/database/postgres"
	"github.com/wonny/influroi/internal/infra/imagefetch"
	"github.com/wonny/influroi/internal/pkg/config"
	"github.com/wonny/influroi/internal/service/analysis"
	svc "github.com/wonny/influroi/internal/service/scoring"
)

// App 조립된 의존성
type App struct {
	Config  *config.Config
	Pool    *postgres.Pool
	Service *svc.Service

	redis      *redis.Client // REDIS_ENABLED=false 또는 연결 실패 시 nil
	redisCache *cache.RedisRankingCache
}

// New DB 연결부터 서비스까지 조립
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	profiles, err := svc.LoadWeightProfiles(cfg.Scoring.ProfileFile)
	if err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := svc.PolicyByName(cfg.Scoring.DefaultPolicy); err != nil {
		pool.Close()
		return nil, fmt.Errorf("SCORING_DEFAULT_POLICY: %w", err)
	}

	a := &App{Config: cfg, Pool: pool}

	rankingCache := a.rankingCache(ctx)

	a.Service = svc.NewService(svc.ServiceConfig{
		Projects:      postgres.NewProjectRepository(pool.Pool),
		Candidates:    postgres.NewInfluencerRepository(pool.Pool),
		Results:       postgres.NewResultRepository(pool.Pool),
		Providers:     Providers(cfg),
		Cache:         rankingCache,
		Profiles:      profiles,
		DefaultPolicy: cfg.Scoring.DefaultPolicy,
		Concurrency:   cfg.Scoring.Concurrency,
	})

	log.Info().
		Int("concurrency", cfg.Scoring.Concurrency).
		Str("default_policy", cfg.Scoring.DefaultPolicy).
		Bool("redis_cache", a.redisCache != nil).
		Bool("image_analysis", cfg.Images.Enabled).
		Msg("✅ Scoring service ready")

	return a, nil
}

// Providers 지표 제공자 조립. 외부 모델 대신 내장 구현을 지연 핸들로 감싼다
func Providers(cfg *config.Config) svc.Providers {
	text := analysis.NewHandle("keyword-cosine", func() (analysis.TextSimilarity, error) {
		return analysis.KeywordSimilarity{}, nil
	})

	var image *analysis.Handle[analysis.ImageSimilarity]
	var loader svc.ImageLoader
	if cfg.Images.Enabled {
		image = analysis.NewHandle("image-ahash", func() (analysis.ImageSimilarity, error) {
			return analysis.AverageHashSimilarity{}, nil
		})
		loader = imagefetch.NewLoader(cfg.Upload.Dir, cfg.Images.HTTPTimeout)
	}

	return svc.Providers{
		Brand:     analysis.NewBrandAnalyzer(text, image),
		Sentiment: analysis.NewSentimentAnalyzer(nil),
		ROI:       analysis.NewROIEstimator(),
		Images:    loader,
	}
}

// rankingCache Redis 가 설정되어 있고 연결되면 Redis, 아니면 메모리
func (a *App) rankingCache(ctx context.Context) svc.RankingCache {
	cfg := a.Config
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, &redis.Options{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			PoolTimeout:  cfg.Redis.PoolTimeout,
		})
		if err == nil {
			a.redis = client
			a.redisCache = cache.NewRedisRankingCache(client, cfg.Scoring.RankingCacheTTL)
			return a.redisCache
		}
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory ranking cache")
	}
	return cache.NewMemoryRankingCache(cfg.Scoring.RankingCacheTTL)
}

// Handlers HTTP 핸들러 묶음
func (a *App) Handlers(version string) api.Handlers {
	var pinger handlers.Pinger
	if a.redisCache != nil {
		pinger = a.redisCache
	}

	return api.Handlers{
		Health:   handlers.NewHealthHandler(a.Pool, pinger, version),
		Project:  handlers.NewProjectHandler(a.Service, a.Config.Upload.Dir),
		Analysis: handlers.NewAnalysisHandler(a.Service),
		Compare:  handlers.NewCompareHandler(a.Service),
		Youtuber: handlers.NewYoutuberHandler(a.Service),
		Home:     handlers.NewHomeHandler(a.Service),
	}
}

// Close 백그라운드 작업 대기 후 호출할 것
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Redis close failed")
		}
	}
	a.Pool.Close()
}
