package services

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"quantdash-go-api/internal/config"
	"quantdash-go-api/internal/models"
)

// Generic in-memory cache with type safety
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*cacheItem[V]
	ttl   time.Duration
}

type cacheItem[V any] struct {
	value      V
	expiration time.Time
}

func NewCache[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	c := &Cache[K, V]{
		items: make(map[K]*cacheItem[V]),
		ttl:   ttl,
	}

	// Start cleanup goroutine
	go c.cleanup()

	return c
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		var zero V
		return zero, false
	}

	return item.value, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem[V]{
		value:      value,
		expiration: time.Now().Add(c.ttl),
	}
}

func (c *Cache[K, V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*cacheItem[V])
}

func (c *Cache[K, V]) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, item := range c.items {
			if now.After(item.expiration) {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}

// analysisDoc wraps a cached result with its storage time so Firestore
// reads can apply the TTL. The result itself stays exactly as assembled.
type analysisDoc struct {
	Result   *models.PortfolioResult `firestore:"result"`
	StoredAt time.Time               `firestore:"stored_at"`
}

// CacheService layers the durable Firestore cache behind the in-memory one.
// Analyses are cached per request tuple; nothing else persists between
// requests.
type CacheService struct {
	ttl             time.Duration
	firestoreClient *firestore.Client
	analysisCache   *Cache[string, *models.PortfolioResult]
	metricsCache    *Cache[string, *models.AssetMetricsResult]
	log             *zap.Logger
}

func NewCacheService(cfg *config.Config, log *zap.Logger) *CacheService {
	ctx := context.Background()

	client, err := firestore.NewClient(ctx, cfg.FirestoreProject)
	if err != nil {
		// Fall back to in-memory only
		log.Warn("failed to initialize Firestore, caching in memory only", zap.Error(err))
		client = nil
	}

	svc := NewMemoryCacheService(cfg.CacheTTL)
	svc.firestoreClient = client
	svc.log = log
	return svc
}

// NewMemoryCacheService builds a CacheService without a Firestore backend.
func NewMemoryCacheService(ttl time.Duration) *CacheService {
	return &CacheService{
		ttl:           ttl,
		analysisCache: NewCache[string, *models.PortfolioResult](ttl),
		metricsCache:  NewCache[string, *models.AssetMetricsResult](ttl),
		log:           zap.NewNop(),
	}
}

// GetAnalysis retrieves a cached portfolio analysis
func (s *CacheService) GetAnalysis(ctx context.Context, cacheKey string) (*models.PortfolioResult, bool) {
	if result, found := s.analysisCache.Get(cacheKey); found {
		return result, true
	}

	if s.firestoreClient != nil {
		doc, err := s.firestoreClient.Collection("analyses").Doc(cacheKey).Get(ctx)
		if err == nil {
			var stored analysisDoc
			if err := doc.DataTo(&stored); err == nil && stored.Result != nil {
				if time.Since(stored.StoredAt) < s.ttl {
					s.analysisCache.Set(cacheKey, stored.Result)
					return stored.Result, true
				}
			}
		}
	}

	return nil, false
}

// SetAnalysis stores a portfolio analysis in cache
func (s *CacheService) SetAnalysis(ctx context.Context, cacheKey string, result *models.PortfolioResult) error {
	s.analysisCache.Set(cacheKey, result)

	if s.firestoreClient != nil {
		_, err := s.firestoreClient.Collection("analyses").Doc(cacheKey).Set(ctx, analysisDoc{
			Result:   result,
			StoredAt: time.Now(),
		})
		return err
	}

	return nil
}

// GetAssetMetrics retrieves cached single-asset metrics
func (s *CacheService) GetAssetMetrics(cacheKey string) (*models.AssetMetricsResult, bool) {
	return s.metricsCache.Get(cacheKey)
}

// SetAssetMetrics stores single-asset metrics in the in-memory cache
func (s *CacheService) SetAssetMetrics(cacheKey string, result *models.AssetMetricsResult) {
	s.metricsCache.Set(cacheKey, result)
}

// Flush clears the in-memory caches
func (s *CacheService) Flush() {
	s.analysisCache.Flush()
	s.metricsCache.Flush()
}

// Close closes the Firestore client
func (s *CacheService) Close() error {
	if s.firestoreClient != nil {
		return s.firestoreClient.Close()
	}
	return nil
}
