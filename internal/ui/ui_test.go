package ui

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/converter"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/panel"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	loop := NewLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return loop, cancel
}

func TestLoopRunsTasksInOrder(t *testing.T) {
	loop, _ := startLoop(t)

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		loop.Post(func() { got = append(got, i) })
	}
	if err := loop.Do(context.Background(), func() {}); err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestLoopSurvivesPanics(t *testing.T) {
	loop, _ := startLoop(t)

	loop.Post(func() { panic("boom") })
	ran := false
	if err := loop.Do(context.Background(), func() { ran = true }); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Error("task after a panic did not run")
	}
}

func TestLoopStopped(t *testing.T) {
	loop, cancel := startLoop(t)
	cancel()
	<-loop.done

	if loop.Post(func() {}) {
		t.Error("Post accepted work after stop")
	}
	if err := loop.Do(context.Background(), func() {}); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("Do = %v, want ErrLoopStopped", err)
	}
}

type stubImporter struct {
	err   error
	calls chan string
}

func (s *stubImporter) Import(_ context.Context, partID string) (converter.Request, error) {
	if s.calls != nil {
		s.calls <- partID
	}
	return converter.Request{PartID: partID}, s.err
}

func newTestCompanions(loop *Loop) *Companions {
	cs := NewCompanions(context.Background(), loop, nil)
	cs.launch = func(*Companions, *Companion) {}
	return cs
}

func TestCompanionsOpenAndClose(t *testing.T) {
	loop, _ := startLoop(t)
	cs := newTestCompanions(loop)
	p := panel.New(&stubImporter{}, nil)

	for _, id := range []string{"0x01", "0x02", "0x03"} {
		if err := cs.Open(id, "board - Schematic Editor", p); err != nil {
			t.Fatal(err)
		}
	}
	if err := cs.Open("0x02", "again", p); err == nil {
		t.Error("second companion for the same window accepted")
	}
	if !cs.Has("0x02") || cs.Len() != 3 {
		t.Fatalf("Has=%v Len=%d", cs.Has("0x02"), cs.Len())
	}

	closed := cs.CloseExcept(map[string]struct{}{"0x02": {}})
	if want := []string{"0x01", "0x03"}; !reflect.DeepEqual(closed, want) {
		t.Errorf("closed = %v, want %v", closed, want)
	}
	if cs.Len() != 1 || !cs.Has("0x02") {
		t.Errorf("remaining companions wrong: len=%d", cs.Len())
	}

	c, _ := cs.Get("0x02")
	cs.forget(c)
	if cs.Has("0x02") {
		t.Error("destroyed companion still tracked")
	}
}

func TestCompanionTitle(t *testing.T) {
	c := newCompanion(context.Background(), "0x01", "amp - Schematic Editor", nil, nil, zap.NewNop())
	if !IsCompanionTitle(c.WindowTitle()) {
		t.Errorf("%q not recognised as a companion title", c.WindowTitle())
	}
	if IsCompanionTitle("amp - Schematic Editor") {
		t.Error("target title recognised as a companion")
	}
}

func waitIdle(t *testing.T, c *Companion) PanelSnapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := c.State(); !snap.Busy {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("submission did not finish")
	return PanelSnapshot{}
}

func TestCompanionSubmit(t *testing.T) {
	loop, _ := startLoop(t)
	cs := newTestCompanions(loop)
	imp := &stubImporter{calls: make(chan string, 4)}
	if err := cs.Open("0x01", "amp - Schematic Editor", panel.New(imp, nil)); err != nil {
		t.Fatal(err)
	}
	c, _ := cs.Get("0x01")

	if !c.Submit("  C12345 ") {
		t.Fatal("Submit refused")
	}
	snap := waitIdle(t, c)
	if snap.Notification == nil || snap.Notification.Title != "Success" {
		t.Fatalf("notification = %+v", snap.Notification)
	}
	if got := <-imp.calls; got != "C12345" {
		t.Errorf("imported %q", got)
	}

	if c.Submit("C1") {
		t.Error("submission accepted while a result is displayed")
	}
	c.Dismiss()
	if c.State().Notification != nil {
		t.Error("Dismiss kept the notification")
	}

	imp.err = &converter.ExitError{Code: 1, Stderr: "part not found"}
	c.Submit("C99")
	snap = waitIdle(t, c)
	if snap.Notification == nil || snap.Notification.Level != panel.LevelError ||
		snap.Notification.Message != "Failed to import part:\npart not found" {
		t.Errorf("notification = %+v", snap.Notification)
	}
}

func TestPanelStateBeginIsExclusive(t *testing.T) {
	var s PanelState
	if !s.Begin("C1") {
		t.Fatal("first Begin refused")
	}
	if s.Begin("C2") {
		t.Error("second Begin accepted while busy")
	}
	s.Finish(panel.Present("C1", nil))
	if s.Begin("C3") {
		t.Error("Begin accepted while a notification is shown")
	}
	s.Dismiss()
	if !s.Begin("C4") {
		t.Error("Begin refused after dismiss")
	}
	if got := s.Snapshot().PartID; got != "C4" {
		t.Errorf("PartID = %q", got)
	}
}
