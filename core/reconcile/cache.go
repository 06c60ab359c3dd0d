package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedPack holds one resolved pack.
type cachedPack struct {
	contents []Tuple
	built    time.Time
}

// CachedResolver wraps a PackResolver with a TTL cache.
// Concurrent lookups of the same label share one call to the underlying resolver.
type CachedResolver struct {
	next PackResolver
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	packs map[string]cachedPack
	sf    singleflight.Group
}

// NewCachedResolver returns a resolver caching successful lookups of next for ttl.
// A zero ttl disables caching but keeps call coalescing.
func NewCachedResolver(next PackResolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		next:  next,
		ttl:   ttl,
		now:   time.Now,
		packs: make(map[string]cachedPack),
	}
}

func (c *CachedResolver) expired(p cachedPack) bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return c.now().Sub(p.built) > c.ttl
}

// ResolvePack returns cached contents when fresh, otherwise resolves through the wrapped resolver.
// Failures are never cached.
func (c *CachedResolver) ResolvePack(ctx context.Context, label string) ([]Tuple, error) {
	label = NormalizeLabel(label)

	// Fast path
	c.mu.RLock()
	p, ok := c.packs[label]
	c.mu.RUnlock()
	if ok && !c.expired(p) {
		return cloneTuples(p.contents), nil
	}

	// The shared lookup must not die with whichever caller happened to start it.
	flight := c.sf.DoChan(label, func() (interface{}, error) {
		c.mu.RLock()
		p, ok := c.packs[label]
		c.mu.RUnlock()
		if ok && !c.expired(p) {
			return p.contents, nil
		}

		contents, err := c.next.ResolvePack(context.WithoutCancel(ctx), label)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.packs[label] = cachedPack{contents: contents, built: c.now()}
			c.mu.Unlock()
		}
		return contents, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-flight:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	return cloneTuples(res.Val.([]Tuple)), nil
}

// Invalidate drops the cached contents of a label.
func (c *CachedResolver) Invalidate(label string) {
	c.mu.Lock()
	delete(c.packs, NormalizeLabel(label))
	c.mu.Unlock()
}

func cloneTuples(in []Tuple) []Tuple {
	out := make([]Tuple, len(in))
	copy(out, in)
	return out
}
