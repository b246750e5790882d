package cache

import (
	"sync"
	"time"

	"github.com/epeers/krxdash/internal/models"
)

// MemoryCache provides an in-memory L1 cache for daily price series
type MemoryCache struct {
	prices  map[string]priceEntry
	priceMu sync.RWMutex
	now     func() time.Time
}

type priceEntry struct {
	data      []models.PriceData
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		prices: make(map[string]priceEntry),
		now:    time.Now,
	}
}

// priceCacheKey generates a cache key for price data
func priceCacheKey(ticker string, startDate, endDate time.Time) string {
	return ticker + ":" + startDate.Format("2006-01-02") + ":" + endDate.Format("2006-01-02")
}

// GetPrices retrieves cached prices if present and not expired
func (c *MemoryCache) GetPrices(ticker string, startDate, endDate time.Time) ([]models.PriceData, bool) {
	c.priceMu.RLock()
	defer c.priceMu.RUnlock()

	entry, exists := c.prices[priceCacheKey(ticker, startDate, endDate)]
	if !exists || !c.now().Before(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

// SetPrices caches price data until expiresAt
func (c *MemoryCache) SetPrices(ticker string, startDate, endDate time.Time, data []models.PriceData, expiresAt time.Time) {
	c.priceMu.Lock()
	defer c.priceMu.Unlock()

	now := c.now()
	c.prices[priceCacheKey(ticker, startDate, endDate)] = priceEntry{
		data:      data,
		expiresAt: expiresAt,
	}
	c.evictExpiredLocked(now)
}

func (c *MemoryCache) evictExpiredLocked(now time.Time) {
	for k, e := range c.prices {
		if !now.Before(e.expiresAt) {
			delete(c.prices, k)
		}
	}
}

// Len returns the number of cached series, expired or not
func (c *MemoryCache) Len() int {
	c.priceMu.RLock()
	defer c.priceMu.RUnlock()
	return len(c.prices)
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.priceMu.Lock()
	c.prices = make(map[string]priceEntry)
	c.priceMu.Unlock()
}
