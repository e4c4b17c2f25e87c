package config

import "time"

// RateLimitConfig drives the gateway token bucket.  Capacity tokens are
// available per key, RefillTokens are added every RefillInterval, and idle
// buckets expire after TTL.  KeyStrategy picks the key parts: ip, user,
// route, ip_user, ip_route, user_route or (default) ip_user_route.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
}

// LoadRateLimitConfig reads the RATE_LIMIT_* keys and clamps them to
// usable values.
func LoadRateLimitConfig(src Source) RateLimitConfig {
	def := RateLimitConfig{
		Enabled:        src.Bool("RATE_LIMIT_ENABLED", false),
		Capacity:       src.Int("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   src.Int("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: src.Dur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            src.Dur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    src.Str("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:         src.Str("RATE_LIMIT_PREFIX", "rl"),
	}
	if def.Capacity < 1 {
		def.Capacity = 1
	}
	if def.RefillTokens < 1 {
		def.RefillTokens = 1
	}
	if def.RefillInterval <= 0 {
		def.RefillInterval = time.Second
	}
	minTTL := 5 * def.RefillInterval
	if def.TTL < minTTL {
		def.TTL = minTTL
	}
	return def
}
