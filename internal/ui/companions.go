package ui

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gioui.org/app"
	"gioui.org/unit"
	"go.uber.org/zap"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/panel"
)

// Companions tracks the open companion windows by target window id.
type Companions struct {
	ctx  context.Context
	loop *Loop
	log  *zap.Logger

	// launch shows a new companion; tests replace it.
	launch func(*Companions, *Companion)

	mu   sync.Mutex
	open map[string]*Companion
}

// NewCompanions creates the manager. Submissions run on loop with ctx.
func NewCompanions(ctx context.Context, loop *Loop, log *zap.Logger) *Companions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Companions{
		ctx:    ctx,
		loop:   loop,
		log:    log,
		launch: launchWindow,
		open:   make(map[string]*Companion),
	}
}

// Has reports whether targetID has an open companion.
func (cs *Companions) Has(targetID string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	_, ok := cs.open[targetID]
	return ok
}

// Get returns the companion of targetID.
func (cs *Companions) Get(targetID string) (*Companion, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c, ok := cs.open[targetID]
	return c, ok
}

// Len returns the number of open companions.
func (cs *Companions) Len() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.open)
}

// Open shows the companion of a target window.
func (cs *Companions) Open(targetID, target string, p *panel.Panel) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.open[targetID]; ok {
		return fmt.Errorf("ui: companion for window %s already open", targetID)
	}
	c := newCompanion(cs.ctx, targetID, target, p, cs.loop, cs.log)
	cs.launch(cs, c)
	cs.open[targetID] = c
	return nil
}

// Invalidate redraws the companion of targetID.
func (cs *Companions) Invalidate(targetID string) {
	if c, ok := cs.Get(targetID); ok {
		c.Invalidate()
	}
}

// CloseExcept closes every companion whose target is not in live and
// returns the closed target ids.
func (cs *Companions) CloseExcept(live map[string]struct{}) []string {
	cs.mu.Lock()
	var stale []*Companion
	for id, c := range cs.open {
		if _, ok := live[id]; !ok {
			stale = append(stale, c)
			delete(cs.open, id)
		}
	}
	cs.mu.Unlock()

	ids := make([]string, 0, len(stale))
	for _, c := range stale {
		c.Close()
		ids = append(ids, c.TargetID)
	}
	sort.Strings(ids)
	return ids
}

// forget drops c after its window was destroyed.
func (cs *Companions) forget(c *Companion) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.open[c.TargetID] == c {
		delete(cs.open, c.TargetID)
	}
}

func launchWindow(cs *Companions, c *Companion) {
	w := new(app.Window)
	w.Option(app.Title(c.WindowTitle()), app.Size(unit.Dp(420), unit.Dp(170)))
	c.attach(w)

	go func() {
		if err := c.Run(); err != nil {
			c.log.Warn("companion window failed", zap.Error(err))
		}
		cs.forget(c)
	}()
}
