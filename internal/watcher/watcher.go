// Package watcher keeps an import panel attached to every open schematic
// editor window. A pass enumerates the host's top-level windows, attaches a
// panel where one is missing, and forgets windows that have closed.
package watcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/metrics"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/panel"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/schedule"
)

// PanelName marks the injected panel inside a target window.
const PanelName = "easyeda2kicad_panel"

// Window is a host top-level window.
type Window interface {
	ID() string
	// Title may fail for windows that are closing or not readable.
	Title() (string, error)
	// HasChild reports whether a child with the given name is attached.
	HasChild(name string) bool
	// Attach adds p to the window under name.
	Attach(name string, p *panel.Panel) error
	// Relayout asks the host to lay out and redraw the window.
	Relayout()
}

// Host enumerates top-level windows.
type Host interface {
	TopLevelWindows() ([]Window, error)
}

// PanelFactory builds the panel for a target window.
type PanelFactory func(w Window) *panel.Panel

// Watcher owns the registry of attached panels.
type Watcher struct {
	host     Host
	factory  PanelFactory
	registry *Registry
	now      func() time.Time
	log      *zap.Logger
}

// New creates a watcher.
func New(host Host, factory PanelFactory, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		host:     host,
		factory:  factory,
		registry: NewRegistry(),
		now:      time.Now,
		log:      log,
	}
}

// Registry exposes the watcher's bookkeeping.
func (w *Watcher) Registry() *Registry { return w.registry }

// Run performs a pass on every tick of clock until ctx is done.
func (w *Watcher) Run(ctx context.Context, clock schedule.Clock, interval time.Duration) error {
	return schedule.Every(ctx, clock, interval, w.Pass)
}

// Pass runs one injection and reconciliation pass. Failures are logged per
// window and never stop the pass.
func (w *Watcher) Pass() {
	metrics.WatcherPasses.Inc()

	windows, err := w.host.TopLevelWindows()
	if err != nil {
		metrics.WindowErrors.WithLabelValues("enumerate").Inc()
		w.log.Warn("cannot enumerate windows", zap.Error(err))
		return
	}

	live := make(map[string]struct{}, len(windows))
	for _, win := range windows {
		if id, ok := w.visit(win); ok {
			live[id] = struct{}{}
		}
	}

	for _, id := range w.registry.Prune(live) {
		w.log.Debug("window closed, panel forgotten", zap.String("window", id))
	}
	metrics.PanelsActive.Set(float64(w.registry.Len()))
}

// visit handles one window and reports its id. A panic in host code is
// contained to the window that raised it.
func (w *Watcher) visit(win Window) (id string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			metrics.WindowErrors.WithLabelValues("panic").Inc()
			w.log.Error("window handling panicked", zap.String("window", id), zap.Any("panic", r))
		}
	}()

	id = win.ID()
	ok = true

	title, err := win.Title()
	if err != nil {
		metrics.WindowErrors.WithLabelValues("title").Inc()
		w.log.Debug("skipping window without readable title", zap.String("window", id), zap.Error(err))
		return id, ok
	}
	if Classify(title) != ClassSchematicEditor {
		return id, ok
	}

	attached := win.HasChild(PanelName)
	_, tracked := w.registry.Get(id)
	switch {
	case attached && tracked:
		return id, ok
	case attached:
		w.log.Info("adopting panel already attached", zap.String("window", id))
		w.registry.Put(&Attachment{WindowID: id, Title: title, AttachedAt: w.now()})
		return id, ok
	case tracked:
		w.log.Info("panel vanished from window, reattaching", zap.String("window", id))
		w.registry.Remove(id)
	}

	if err := w.attach(win, id, title); err != nil {
		metrics.WindowErrors.WithLabelValues("attach").Inc()
		w.log.Warn("cannot attach panel", zap.String("window", id), zap.String("title", title), zap.Error(err))
	}
	return id, ok
}

func (w *Watcher) attach(win Window, id, title string) error {
	p := w.factory(win)
	if p == nil {
		return fmt.Errorf("watcher: panel factory returned nil")
	}
	if err := win.Attach(PanelName, p); err != nil {
		return err
	}
	w.registry.Put(&Attachment{WindowID: id, Title: title, Panel: p, AttachedAt: w.now()})
	win.Relayout()

	metrics.PanelsAttached.Inc()
	w.log.Info("panel attached", zap.String("window", id), zap.String("title", title))
	return nil
}
