package download

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache maps source URLs to downloaded files. Concurrent fetches of the
// same URL are collapsed into one in-flight download; everyone else
// waits for its result. Entries age out via Sweep and the whole cache is
// cleared on shutdown so no temp files leak.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry

	flight     singleflight.Group
	downloader *Downloader
	maxAge     time.Duration
}

type cacheEntry struct {
	path    string
	fetched time.Time
}

// NewCache creates a Cache. maxAge <= 0 means entries never expire until
// Clear.
func NewCache(downloader *Downloader, maxAge time.Duration) *Cache {
	return &Cache{
		entries:    make(map[string]cacheEntry),
		downloader: downloader,
		maxAge:     maxAge,
	}
}

// Fetch returns a local path for sourceURL, downloading on miss. The
// returned file belongs to the cache; callers must not remove it.
func (c *Cache) Fetch(ctx context.Context, sourceURL string) (string, error) {
	if path, ok := c.lookup(sourceURL); ok {
		return path, nil
	}

	path, err, _ := c.flight.Do(sourceURL, func() (interface{}, error) {
		// A concurrent caller may have populated the entry while this
		// one waited on the flight group.
		if path, ok := c.lookup(sourceURL); ok {
			return path, nil
		}

		path, err := c.downloader.Download(ctx, sourceURL)
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		if old, ok := c.entries[sourceURL]; ok && old.path != path {
			os.Remove(old.path)
		}
		c.entries[sourceURL] = cacheEntry{path: path, fetched: time.Now()}
		c.mu.Unlock()

		return path, nil
	})
	if err != nil {
		return "", err
	}
	return path.(string), nil
}

func (c *Cache) lookup(sourceURL string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[sourceURL]
	if !ok {
		return "", false
	}
	if c.maxAge > 0 && time.Since(e.fetched) > c.maxAge {
		return "", false
	}
	return e.path, true
}

// Sweep evicts entries older than maxAge and removes their files.
func (c *Cache) Sweep() {
	if c.maxAge <= 0 {
		return
	}
	cutoff := time.Now().Add(-c.maxAge)

	c.mu.Lock()
	defer c.mu.Unlock()

	for url, e := range c.entries {
		if e.fetched.Before(cutoff) {
			if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
				log.Printf("cache sweep: removing %s: %v", e.path, err)
			}
			delete(c.entries, url)
		}
	}
}

// Clear drops every entry and removes its file. Called on shutdown.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for url, e := range c.entries {
		if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
			log.Printf("cache clear: removing %s: %v", e.path, err)
		}
		delete(c.entries, url)
	}
}

// Len reports the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
