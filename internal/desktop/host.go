// Package desktop connects the window watcher to a real desktop: windows
// come from the window manager and panels are shown as companion windows.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/panel"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/watcher"
)

// ErrUnsupported reports a platform without window enumeration.
var ErrUnsupported = errors.New("desktop: window enumeration is not supported on this platform")

// listTimeout bounds one window manager query.
const listTimeout = 5 * time.Second

// Lister enumerates top-level windows.
type Lister interface {
	List(ctx context.Context) ([]WindowInfo, error)
}

// PanelSurface shows panels next to target windows.
type PanelSurface interface {
	Has(targetID string) bool
	Open(targetID, target string, p *panel.Panel) error
	Invalidate(targetID string)
	CloseExcept(live map[string]struct{}) []string
}

// IgnoreFunc reports windows the host hides from the watcher, such as the
// surface's own companion windows.
type IgnoreFunc func(title string) bool

// Host implements watcher.Host.
type Host struct {
	ctx     context.Context
	lister  Lister
	surface PanelSurface
	ignore  IgnoreFunc
	log     *zap.Logger
}

// NewHost creates a host. ctx bounds window manager queries.
func NewHost(ctx context.Context, lister Lister, surface PanelSurface, ignore IgnoreFunc, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	if ignore == nil {
		ignore = func(string) bool { return false }
	}
	return &Host{ctx: ctx, lister: lister, surface: surface, ignore: ignore, log: log}
}

// TopLevelWindows implements watcher.Host. Companions whose target window is
// gone are closed as a side effect.
func (h *Host) TopLevelWindows() ([]watcher.Window, error) {
	ctx, cancel := context.WithTimeout(h.ctx, listTimeout)
	defer cancel()

	infos, err := h.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	windows := make([]watcher.Window, 0, len(infos))
	live := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		if h.ignore(info.Title) {
			continue
		}
		live[info.ID] = struct{}{}
		windows = append(windows, &window{info: info, host: h})
	}

	for _, id := range h.surface.CloseExcept(live) {
		h.log.Debug("target window gone, companion closed", zap.String("window", id))
	}
	return windows, nil
}

type window struct {
	info WindowInfo
	host *Host
}

func (w *window) ID() string { return w.info.ID }

func (w *window) Title() (string, error) {
	if !utf8.ValidString(w.info.Title) {
		return "", fmt.Errorf("desktop: window %s: title is not valid UTF-8", w.info.ID)
	}
	return w.info.Title, nil
}

func (w *window) HasChild(name string) bool {
	return name == watcher.PanelName && w.host.surface.Has(w.info.ID)
}

func (w *window) Attach(name string, p *panel.Panel) error {
	if name != watcher.PanelName {
		return fmt.Errorf("desktop: unknown panel %q", name)
	}
	return w.host.surface.Open(w.info.ID, w.info.Title, p)
}

func (w *window) Relayout() {
	w.host.surface.Invalidate(w.info.ID)
}
