package common

import (
	"time"

	"github.com/patrickmn/go-cache"

	"aerometrics/fleetdw/internal/metrics"
)

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader
	// function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)
}

// CacheService is the in-memory cache used in front of the lookup store
type CacheService struct {
	cache   *cache.Cache
	metrics *metrics.MetricsRegistry
	pattern string
}

var _ CacheInterface = (*CacheService)(nil)

// NewCacheService creates an in-memory cache. The pattern label tags the
// cache's hit/miss metrics; metrics may be nil in tests.
func NewCacheService(defaultExpirationSeconds, cleanUpIntervalSeconds int, reg *metrics.MetricsRegistry, pattern string) *CacheService {
	defaultExpiration := time.Duration(defaultExpirationSeconds) * time.Second
	cleanUpInterval := time.Duration(cleanUpIntervalSeconds) * time.Second

	return &CacheService{
		cache:   cache.New(defaultExpiration, cleanUpInterval),
		metrics: reg,
		pattern: pattern,
	}
}

func (cs *CacheService) Set(key string, value interface{}, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) (interface{}, bool) {
	val, found := cs.cache.Get(key)
	if cs.metrics != nil {
		if found {
			cs.metrics.CacheHitsTotal.WithLabelValues(cs.pattern).Inc()
		} else {
			cs.metrics.CacheMissesTotal.WithLabelValues(cs.pattern).Inc()
		}
	}
	return val, found
}

func (cs *CacheService) Delete(key string) {
	cs.cache.Delete(key)
}

func (cs *CacheService) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error)) (interface{}, error) {
	if val, found := cs.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	cs.Set(key, val, duration)
	return val, nil
}
