package client

import "sync"

// Guard tracks the most recently issued request key. A response is only
// applied if its key is still the active one.
type Guard struct {
	mu     sync.Mutex
	active string
}

// Begin makes key the active request.
func (g *Guard) Begin(key string) {
	g.mu.Lock()
	g.active = key
	g.mu.Unlock()
}

// Current reports whether key is still the active request.
func (g *Guard) Current(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active == key
}
