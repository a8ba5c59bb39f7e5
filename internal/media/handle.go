// Package media abstracts a playable media element. The playback coordinator
// drives items through the Handle interface and never assumes a concrete
// rendering backend.
package media

import "context"

// Handle is the capability surface over one playable item.
//
// Play may block (buffering) and may fail when the environment declines to
// start playback, e.g. an autoplay policy. Callers treat a failed Play as
// "remains paused". Pause and SetMuted are immediate and never fail.
type Handle interface {
	Play(ctx context.Context) error
	Pause()
	SetMuted(muted bool)
	Paused() bool
}

// Registry maps item ids to their handles. Owned by the UI event loop; not
// safe for concurrent use.
type Registry struct {
	handles map[string]Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]Handle)}
}

// Add registers the handle for id, replacing any previous one.
func (r *Registry) Add(id string, h Handle) {
	r.handles[id] = h
}

// Remove drops the handle for id.
func (r *Registry) Remove(id string) {
	delete(r.handles, id)
}

// Get returns the handle for id.
func (r *Registry) Get(id string) (Handle, bool) {
	h, ok := r.handles[id]
	return h, ok
}

// Len returns the number of registered handles.
func (r *Registry) Len() int { return len(r.handles) }
