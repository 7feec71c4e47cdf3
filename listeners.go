package restclient

import (
	cache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/typedrest/go-rest-client/interfaces"
)

// ListenerSource discovers the listeners for an execution context. It is called at
// most once per context key per registry; the result is cached until the key is
// evicted.
type ListenerSource func(contextKey string) []interfaces.ClientListener

// ListenerRegistry caches discovered listener lists per execution context. All
// builders attached to the same registry and context key observe the same listener
// list; discovery runs lazily on first use of a key.
//
// A registry is safe for concurrent use. Concurrent first uses of the same key are
// collapsed into a single discovery call. Evict releases a single context's cached
// list; Close releases them all.
type ListenerRegistry struct {
	source ListenerSource
	cache  *cache.Cache
	group  singleflight.Group
}

// NewListenerRegistry creates a registry with the given discovery source. A nil source
// yields empty listener lists.
func NewListenerRegistry(source ListenerSource) *ListenerRegistry {
	return &ListenerRegistry{
		source: source,
		cache:  cache.New(cache.NoExpiration, 0),
	}
}

// ListenersFor returns the listener list for a context key, discovering and caching it
// on first use. A nil registry returns nil, so builders without an attached registry
// need no special casing.
func (r *ListenerRegistry) ListenersFor(contextKey string) []interfaces.ClientListener {
	if r == nil {
		return nil
	}
	if cached, ok := r.cache.Get(contextKey); ok {
		return cached.([]interfaces.ClientListener)
	}
	result, _, _ := r.group.Do(contextKey, func() (interface{}, error) {
		if cached, ok := r.cache.Get(contextKey); ok {
			return cached, nil
		}
		var listeners []interfaces.ClientListener
		if r.source != nil {
			listeners = r.source(contextKey)
		}
		r.cache.Set(contextKey, listeners, cache.NoExpiration)
		return listeners, nil
	})
	listeners, _ := result.([]interfaces.ClientListener)
	return listeners
}

// Evict discards the cached listener list for a context key. The next use of the key
// triggers fresh discovery.
func (r *ListenerRegistry) Evict(contextKey string) {
	r.cache.Delete(contextKey)
}

// Close discards all cached listener lists. The registry remains usable; it is not a
// terminal operation, just a full eviction.
func (r *ListenerRegistry) Close() {
	r.cache.Flush()
}
