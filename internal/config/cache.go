package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching will be disabled.
// Methods lists the HTTP methods to cache (e.g. GET, HEAD).  TTL defines the
// lifetime of cache entries.  KeyStrategy determines which parts of the request
// contribute to the cache key.  Prefix and MaxBodyBytes allow control over
// namespacing and the maximum size of responses to cache.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
	// Paths restricts caching to request paths with one of these prefixes.
	// Empty means every path.
	Paths []string
}

// LoadCacheConfig builds a CacheConfig.  Defaults are used when keys are
// not set.  All methods are upper-cased.
func LoadCacheConfig(src Source) CacheConfig {
	return CacheConfig{
		Enabled:      src.Bool("CACHE_ENABLED", false),
		Methods:      parseMethods(src.Str("CACHE_METHODS", "GET")),
		TTL:          src.Dur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  src.Str("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       src.Str("CACHE_PREFIX", "cache"),
		MaxBodyBytes: src.Int("CACHE_MAX_BODY_BYTES", 1048576),
		Paths:        splitList(src.Str("CACHE_PATHS", "/api/rooms")),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range splitList(s) {
		m[strings.ToUpper(p)] = true
	}
	return m
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
