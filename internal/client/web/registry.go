package web

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/client/dashboard"
	"github.com/dmitrijs2005/circuitstock/internal/client/editor"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
)

// view is the server-side state of one browser: its mounted dashboard and
// the editor modal open over it, if any.
type view struct {
	dash   *dashboard.Dashboard
	editor *editor.Editor
}

// Registry holds one view per browser and unmounts views left idle.
type Registry struct {
	mu      sync.Mutex
	views   map[string]*view
	newDash func() *dashboard.Dashboard
	log     logging.Logger
	now     func() time.Time
}

// NewRegistry returns an empty registry. newDash mounts a fresh dashboard.
func NewRegistry(newDash func() *dashboard.Dashboard, log logging.Logger, now func() time.Time) *Registry {
	return &Registry{
		views:   make(map[string]*view),
		newDash: newDash,
		log:     log,
		now:     now,
	}
}

// Dashboard returns the dashboard of view id, mounting one if needed.
// created reports whether it was just mounted.
func (r *Registry) Dashboard(id string) (d *dashboard.Dashboard, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	if !ok {
		v = &view{dash: r.newDash()}
		r.views[id] = v
	}
	v.dash.Touch()
	return v.dash, !ok
}

// OpenEditor places e over the dashboard of view id.
func (r *Registry) OpenEditor(id string, e *editor.Editor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.views[id]; ok {
		v.editor = e
	}
}

// Editor returns the open editor of view id, or nil.
func (r *Registry) Editor(id string) *editor.Editor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.views[id]; ok {
		return v.editor
	}
	return nil
}

// CloseEditor dismisses the editor of view id if it is still e.
func (r *Registry) CloseEditor(id string, e *editor.Editor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.views[id]; ok && v.editor == e {
		v.editor = nil
	}
}

// Drop unmounts the view id.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if ok {
		v.dash.Close()
	}
}

// Len returns the number of mounted views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Sweep unmounts views idle for at least ttl and returns how many it
// dropped.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	var idle []*view
	for id, v := range r.views {
		if !v.dash.IdleSince().After(cutoff) {
			idle = append(idle, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range idle {
		v.dash.Close()
	}
	return len(idle)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(ttl); n > 0 {
				r.log.Debug(ctx, "swept idle dashboards", "count", n, "remaining", r.Len())
			}
		}
	}
}
