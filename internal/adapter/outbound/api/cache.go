package api

import (
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// responseCache is a small TTL cache for GET response bodies. Keys are
// xxhash digests of method+path+query. Any mutating call purges the whole
// cache; list views tolerate slightly stale data within one TTL.
type responseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uint64]cacheEntry
}

type cacheEntry struct {
	body      []byte
	expiresAt time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		ttl:     ttl,
		entries: make(map[uint64]cacheEntry),
	}
}

func cacheKey(method, path string, query url.Values) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(method)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(path)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(query.Encode())
	return h.Sum64()
}

// get unmarshals a fresh cached body into result and reports a hit.
func (rc *responseCache) get(method, path string, query url.Values, result any) bool {
	key := cacheKey(method, path, query)

	rc.mu.Lock()
	entry, ok := rc.entries[key]
	if ok && time.Now().After(entry.expiresAt) {
		delete(rc.entries, key)
		ok = false
	}
	rc.mu.Unlock()

	if !ok || result == nil {
		return false
	}
	return json.Unmarshal(entry.body, result) == nil
}

func (rc *responseCache) put(method, path string, query url.Values, body []byte) {
	key := cacheKey(method, path, query)
	rc.mu.Lock()
	rc.entries[key] = cacheEntry{body: body, expiresAt: time.Now().Add(rc.ttl)}
	rc.mu.Unlock()
}

func (rc *responseCache) purge() {
	rc.mu.Lock()
	rc.entries = make(map[uint64]cacheEntry)
	rc.mu.Unlock()
}
