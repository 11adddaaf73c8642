package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/domain/scoring"
	svc "github.com/wonny/influroi/internal/service/scoring"
)

const keyPrefix = "influroi:ranking"

// RankingKey influroi:ranking:{project}:{policy}
func RankingKey(projectID, policy string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, projectID, policy)
}

// RedisRankingCache Redis 기반 랭킹 캐시 (JSON)
type RedisRankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient config 값으로 클라이언트 생성 후 PING
func NewRedisClient(ctx context.Context, opts *redis.Options) (*redis.Client, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().Str("addr", opts.Addr).Msg("✅ Redis connected successfully")
	return client, nil
}

// NewRedisRankingCache 랭킹 캐시 생성
func NewRedisRankingCache(client *redis.Client, ttl time.Duration) *RedisRankingCache {
	return &RedisRankingCache{client: client, ttl: ttl}
}

// Get 캐시 조회. 없으면 (nil, false, nil)
func (c *RedisRankingCache) Get(ctx context.Context, projectID, policy string) (*scoring.ProjectRanking, bool, error) {
	raw, err := c.client.Get(ctx, RankingKey(projectID, policy)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var ranking scoring.ProjectRanking
	if err := json.Unmarshal(raw, &ranking); err != nil {
		return nil, false, fmt.Errorf("decode cached ranking: %w", err)
	}
	return &ranking, true, nil
}

// Set 캐시 저장
func (c *RedisRankingCache) Set(ctx context.Context, ranking *scoring.ProjectRanking) error {
	raw, err := json.Marshal(ranking)
	if err != nil {
		return fmt.Errorf("encode ranking: %w", err)
	}

	if err := c.client.Set(ctx, RankingKey(ranking.ProjectID, ranking.Policy), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate 프로젝트의 모든 정책 키 삭제
func (c *RedisRankingCache) Invalidate(ctx context.Context, projectID string) error {
	names := svc.PolicyNames()
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, RankingKey(projectID, name))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	log.Debug().Str("project_id", projectID).Msg("Ranking cache invalidated")
	return nil
}

// Ping 헬스 체크
func (c *RedisRankingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

var _ svc.RankingCache = (*RedisRankingCache)(nil)
