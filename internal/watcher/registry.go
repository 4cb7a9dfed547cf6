package watcher

import (
	"sort"
	"time"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/panel"
)

// Attachment records the panel injected into one target window. Panel is
// nil when the watcher adopted a panel it found already attached.
type Attachment struct {
	WindowID   string
	Title      string
	Panel      *panel.Panel
	AttachedAt time.Time
}

// Registry maps window ids to their attachments. It is owned by a single
// Watcher and only touched from the goroutine running its passes.
type Registry struct {
	entries map[string]*Attachment
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Attachment)}
}

func (r *Registry) Get(id string) (*Attachment, bool) {
	a, ok := r.entries[id]
	return a, ok
}

func (r *Registry) Put(a *Attachment) {
	r.entries[a.WindowID] = a
}

func (r *Registry) Remove(id string) {
	delete(r.entries, id)
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// IDs returns the tracked window ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Prune drops every entry whose window is not in live and returns the
// dropped ids.
func (r *Registry) Prune(live map[string]struct{}) []string {
	var dropped []string
	for id := range r.entries {
		if _, ok := live[id]; !ok {
			delete(r.entries, id)
			dropped = append(dropped, id)
		}
	}
	sort.Strings(dropped)
	return dropped
}
