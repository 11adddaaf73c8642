package cache

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/influroi/internal/domain/scoring"
	svc "github.com/wonny/influroi/internal/service/scoring"
)

// MemoryRankingCache 프로세스 내 랭킹 캐시 (Redis 미사용 시)
type MemoryRankingCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	hits   int64
	misses int64
}

type memoryEntry struct {
	ranking   *scoring.ProjectRanking
	expiresAt time.Time
}

// NewMemoryRankingCache ttl <= 0 이면 만료 없음
func NewMemoryRankingCache(ttl time.Duration) *MemoryRankingCache {
	return &MemoryRankingCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get 캐시 조회
func (c *MemoryRankingCache) Get(_ context.Context, projectID, policy string) (*scoring.ProjectRanking, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := RankingKey(projectID, policy)
	entry, ok := c.entries[key]
	if !ok || (!entry.expiresAt.IsZero() && c.now().After(entry.expiresAt)) {
		if ok {
			delete(c.entries, key)
		}
		c.misses++
		return nil, false, nil
	}

	c.hits++
	return entry.ranking, true, nil
}

// Set 캐시 저장
func (c *MemoryRankingCache) Set(_ context.Context, ranking *scoring.ProjectRanking) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	c.entries[RankingKey(ranking.ProjectID, ranking.Policy)] = memoryEntry{
		ranking:   ranking,
		expiresAt: expiresAt,
	}
	return nil
}

// Invalidate 프로젝트의 모든 정책 엔트리 삭제
func (c *MemoryRankingCache) Invalidate(_ context.Context, projectID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range svc.PolicyNames() {
		delete(c.entries, RankingKey(projectID, name))
	}
	return nil
}

// Stats hits, misses, size
func (c *MemoryRankingCache) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.entries)
}

var _ svc.RankingCache = (*MemoryRankingCache)(nil)
