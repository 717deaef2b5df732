package db

import (
	"log"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Stats summaries are cached per user and dropped on any transaction write by
// that user. The per-user key registry makes the invalidation a single call.
var (
	Cache         *ristretto.Cache
	statsCacheTTL = 5 * time.Minute

	StatsCacheKeys = struct {
		sync.RWMutex
		m map[string]map[string]struct{}
	}{m: make(map[string]map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func GetStatsCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

func SetStatsCache(userID, cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	StatsCacheKeys.Lock()
	if StatsCacheKeys.m[userID] == nil {
		StatsCacheKeys.m[userID] = make(map[string]struct{})
	}
	StatsCacheKeys.m[userID][cacheKey] = struct{}{}
	StatsCacheKeys.Unlock()
	Cache.SetWithTTL(cacheKey, value, 1, statsCacheTTL)
}

// ClearStatsCache drops every cached summary for one user.
func ClearStatsCache(userID string) {
	if Cache == nil {
		return
	}
	StatsCacheKeys.Lock()
	for key := range StatsCacheKeys.m[userID] {
		Cache.Del(key)
	}
	delete(StatsCacheKeys.m, userID)
	StatsCacheKeys.Unlock()
}
