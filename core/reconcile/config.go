package reconcile

import "time"

// Config holds configuration for scan reconciliation.
type Config struct {
	// AllowRescan lets an already applied pack label be credited again.
	AllowRescan bool `mapstructure:"allow_rescan" default:"false"`
	// StrictFinalize requires every line to be matched before finalizing.
	StrictFinalize bool `mapstructure:"strict_finalize" default:"false"`
	// ResolverCacheTTLSeconds is how long resolved packs are cached. Zero disables the cache.
	ResolverCacheTTLSeconds int `mapstructure:"resolver_cache_ttl_seconds" default:"300"`
}

// Options converts the configuration to engine options.
func (c Config) Options() Options {
	return Options{
		AllowRescan:    c.AllowRescan,
		StrictFinalize: c.StrictFinalize,
	}
}

// ResolverCacheTTL returns the pack cache TTL as a duration.
func (c Config) ResolverCacheTTL() time.Duration {
	if c.ResolverCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.ResolverCacheTTLSeconds) * time.Second
}
