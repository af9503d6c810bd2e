package config

import "time"

// RateLimitConfig controls the token bucket applied to every catalog route.
// Buckets live in Redis when a client is available; otherwise LocalFallback
// keeps an in-process bucket per key, bounded by MaxLocalKeys.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string // ip | route | ip_route
	Prefix         string
	Debug          bool
	LocalFallback  bool
	MaxLocalKeys   int
}

func LoadRateLimitConfig() RateLimitConfig {
	def := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
		Prefix:         envStr("RATE_LIMIT_PREFIX", "catalog:rl"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
		LocalFallback:  envBool("RATE_LIMIT_LOCAL_FALLBACK", true),
		MaxLocalKeys:   envInt("RATE_LIMIT_MAX_LOCAL_KEYS", 10000),
	}
	return def.normalize()
}

// normalize clamps values that would make the bucket useless.
func (c RateLimitConfig) normalize() RateLimitConfig {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	if c.MaxLocalKeys < 1 {
		c.MaxLocalKeys = 1
	}
	return c
}
