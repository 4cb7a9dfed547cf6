package ui

import (
	"sync"
	"time"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/panel"
)

// PanelSnapshot is a copy of a companion's state for rendering without
// holding locks while laying out widgets.
type PanelSnapshot struct {
	Busy         bool
	PartID       string
	Notification *panel.Notification
	LastUpdated  time.Time
}

// PanelState is shared between a companion's Gio goroutine and the
// dispatcher running its submissions.
type PanelState struct {
	mu sync.RWMutex

	busy         bool
	partID       string
	notification *panel.Notification
	lastUpdated  time.Time
}

// Snapshot returns a copy of the mutable state.
func (s *PanelState) Snapshot() PanelSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := PanelSnapshot{Busy: s.busy, PartID: s.partID, LastUpdated: s.lastUpdated}
	if s.notification != nil {
		n := *s.notification
		snap.Notification = &n
	}
	return snap
}

// Begin marks a submission for partID as running. It reports false when
// one is already running or a notification is still on screen.
func (s *PanelState) Begin(partID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy || s.notification != nil {
		return false
	}
	s.busy = true
	s.partID = partID
	s.lastUpdated = time.Now()
	return true
}

// Finish records the outcome of the running submission.
func (s *PanelState) Finish(n panel.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = false
	s.notification = &n
	s.lastUpdated = time.Now()
}

// Dismiss clears the notification once the user acknowledged it.
func (s *PanelState) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notification = nil
	s.lastUpdated = time.Now()
}
