package schedule

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEveryRunsOncePerTick(t *testing.T) {
	clock := NewFake(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ran := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Every(ctx, clock, 2*time.Second, func() { ran <- struct{}{} })
	}()
	clock.WaitForTicker()

	clock.Advance(time.Second)
	select {
	case <-ran:
		t.Fatal("task ran before the interval elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	for i := 0; i < 3; i++ {
		clock.Advance(2 * time.Second)
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatalf("tick %d did not run the task", i)
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Every returned %v, want context.Canceled", err)
	}
}

func TestFakeDropsUnreadTicks(t *testing.T) {
	clock := NewFake(time.Unix(0, 0))
	ticker := clock.NewTicker(time.Second)
	clock.WaitForTicker()

	clock.Advance(5 * time.Second)
	select {
	case <-ticker.C():
	default:
		t.Fatal("expected a pending tick")
	}
	select {
	case <-ticker.C():
		t.Fatal("missed ticks should be dropped, not queued")
	default:
	}

	ticker.Stop()
	clock.Advance(time.Second)
	select {
	case <-ticker.C():
		t.Fatal("stopped ticker fired")
	default:
	}
}
