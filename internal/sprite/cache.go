package sprite

import (
	"image"
	"sync"
)

// FilteredKey derives the cache key under which the background-removed
// variant of a locator is stored. The tag keeps raw and filtered bitmaps for
// the same source side by side in one BitmapCache without colliding.
func FilteredKey(locator string) string {
	return locator + "#filtered"
}

// BitmapCache provides thread-safe caching of decoded bitmaps to avoid
// redundant fetches and decodes.
//
// Bitmaps are keyed by their source locator string. Two locators are equal
// iff their string values are equal; no path or URL normalization is applied.
// Entries are inserted or overwritten wholesale and stay resident until
// Evict() or Clear() is called; there is no size bound or eviction policy.
//
// The cache hands out shared views of its bitmaps. Callers must treat the
// returned pixel buffers as read-only.
//
// # Example Usage
//
//	cache := sprite.NewBitmapCache()
//	loader := sprite.NewLoader(cache)
//	img, err := loader.Load(ctx, "assets/tavern.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use img...
//	cache.Clear() // Optional: free memory
type BitmapCache struct {
	mu      sync.RWMutex
	bitmaps map[string]*image.NRGBA
}

// NewBitmapCache creates and initializes a new empty bitmap cache.
//
// The returned cache is ready for immediate use and is safe for concurrent
// access.
func NewBitmapCache() *BitmapCache {
	return &BitmapCache{
		bitmaps: make(map[string]*image.NRGBA),
	}
}

// Get returns the cached bitmap for key, or (nil, false) if absent.
func (c *BitmapCache) Get(key string) (*image.NRGBA, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.bitmaps[key]
	return img, ok
}

// Put stores a bitmap under key, replacing any previous entry wholesale.
func (c *BitmapCache) Put(key string, img *image.NRGBA) {
	c.mu.Lock()
	c.bitmaps[key] = img
	c.mu.Unlock()
}

// Evict removes a specific bitmap from the cache by its key.
//
// If the key is not in the cache, this method does nothing. After eviction,
// the next Load() for this locator will fetch again.
func (c *BitmapCache) Evict(key string) {
	c.mu.Lock()
	delete(c.bitmaps, key)
	c.mu.Unlock()
}

// Clear removes all bitmaps from the cache, freeing the associated memory.
//
// After Clear(), every locator must be fetched and decoded again on its next
// Load() call.
func (c *BitmapCache) Clear() {
	c.mu.Lock()
	c.bitmaps = make(map[string]*image.NRGBA)
	c.mu.Unlock()
}

// Len reports the number of cached entries.
func (c *BitmapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bitmaps)
}

// BoundsCache memoizes ContentBounds records per source locator.
//
// It is keyed independently from the BitmapCache: analyzing a locator whose
// underlying bitmap has since been replaced still returns the previously
// computed record. Invalidation is the caller's responsibility via Clear()
// or Evict().
type BoundsCache struct {
	mu     sync.RWMutex
	bounds map[string]*ContentBounds
}

// NewBoundsCache creates a new empty content-bounds cache.
func NewBoundsCache() *BoundsCache {
	return &BoundsCache{
		bounds: make(map[string]*ContentBounds),
	}
}

// Get returns the cached record for key, or (nil, false) if absent.
func (c *BoundsCache) Get(key string) (*ContentBounds, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bounds[key]
	return b, ok
}

// Put stores a record under key, replacing any previous entry.
func (c *BoundsCache) Put(key string, b *ContentBounds) {
	c.mu.Lock()
	c.bounds[key] = b
	c.mu.Unlock()
}

// Evict removes the record for key, if present.
func (c *BoundsCache) Evict(key string) {
	c.mu.Lock()
	delete(c.bounds, key)
	c.mu.Unlock()
}

// Clear removes all cached records.
func (c *BoundsCache) Clear() {
	c.mu.Lock()
	c.bounds = make(map[string]*ContentBounds)
	c.mu.Unlock()
}

// Analyze returns the cached ContentBounds for locator, computing and
// caching it from img on first use. Subsequent calls for the same locator
// skip the pixel scan entirely, even if img differs from the bitmap that
// produced the cached record.
func (c *BoundsCache) Analyze(locator string, img *image.NRGBA) *ContentBounds {
	c.mu.RLock()
	if b, ok := c.bounds[locator]; ok {
		c.mu.RUnlock()
		return b
	}
	c.mu.RUnlock()

	b := AnalyzeBounds(img)

	c.mu.Lock()
	c.bounds[locator] = b
	c.mu.Unlock()

	return b
}
