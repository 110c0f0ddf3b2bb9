package cart

import (
	"sync"
	"time"
)

type entry struct {
	store    *Store
	lastUsed time.Time
}

// Registry maps a cart owner (user id or anonymous session key) to its Store.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*entry
	now    func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[string]*entry),
		now:    time.Now,
	}
}

// Get returns the owner's store, creating an empty one on first use.
func (r *Registry) Get(owner string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.stores[owner]
	if !ok {
		e = &entry{store: NewStore()}
		r.stores[owner] = e
	}
	e.lastUsed = r.now()
	return e.store
}

// Take removes the owner's store from the registry and returns it. Only one
// caller can take a given store.
func (r *Registry) Take(owner string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.stores[owner]
	if !ok {
		return nil, false
	}
	delete(r.stores, owner)
	return e.store, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Prune removes carts untouched for longer than maxIdle and returns how many
// were removed.
func (r *Registry) Prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for owner, e := range r.stores {
		if e.lastUsed.Before(cutoff) {
			delete(r.stores, owner)
			removed++
		}
	}
	return removed
}

// StartPruneRoutine prunes idle carts every interval until stop is closed.
func (r *Registry) StartPruneRoutine(interval, maxIdle time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.Prune(maxIdle)
			case <-stop:
				return
			}
		}
	}()
}
