package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const STATS_CACHE_KEY = "waitlist_stats"
const STATS_STALE_KEY = "waitlist_stats_stale"
const STATS_CACHE_TTL = time.Second * 30

// StatsCache keeps the display-only signup count out of the database's hot
// path. A fresh key expires after STATS_CACHE_TTL; a stale key never
// expires and is served while a refresh is due.
type StatsCache struct {
	RedisClient *redis.Client
}

var cacheSingleton StatsCache

func (sc StatsCache) Set(count int64) error {
	val := strconv.FormatInt(count, 10)

	res := sc.RedisClient.Set(
		context.Background(),
		STATS_STALE_KEY,
		val,
		0,
	)

	if res.Err() != nil {
		log.Error().Err(res.Err()).Msg("failed to set stale stats in redis")
		return res.Err()
	}

	res = sc.RedisClient.SetEX(
		context.Background(),
		STATS_CACHE_KEY,
		val,
		STATS_CACHE_TTL,
	)

	return res.Err()
}

// Get returns the cached count (nil when nothing is cached at all) and
// whether the caller should recompute and Set a fresh value.
func (sc StatsCache) Get() (*int64, bool, error) {
	shouldRefresh := true
	res := sc.RedisClient.Get(context.Background(), STATS_CACHE_KEY)
	if err := res.Err(); err != nil {
		if err == redis.Nil {
			res = sc.RedisClient.Get(context.Background(), STATS_STALE_KEY)
			if res.Err() == redis.Nil {
				return nil, shouldRefresh, nil
			}
			if res.Err() != nil {
				return nil, shouldRefresh, res.Err()
			}
		} else {
			log.Error().Err(err).Msg("failed to get stats from redis")
			return nil, shouldRefresh, err
		}
	} else {
		shouldRefresh = false
	}

	count, err := res.Int64()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse cached stats from redis")
		return nil, shouldRefresh, err
	}

	return &count, shouldRefresh, nil
}

var initOnce sync.Once

func InitStatsCache(r *redis.Client) {
	initOnce.Do(func() {
		cacheSingleton = StatsCache{
			RedisClient: r,
		}
	})
}

func GetStatsCache() StatsCache {
	return cacheSingleton
}
