package ui

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrLoopStopped is returned for work posted after the loop has exited.
var ErrLoopStopped = errors.New("ui: dispatcher stopped")

// Loop runs posted tasks one at a time on a single goroutine. Watcher passes
// and panel submissions both go through it, so neither needs its own
// locking.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	log   *zap.Logger
}

// NewLoop creates a dispatcher. Call Run to start it.
func NewLoop(log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Run executes tasks until ctx is done. A panicking task is logged and the
// loop keeps going.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			l.exec(task)
		}
	}
}

func (l *Loop) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("dispatcher task panicked", zap.Any("panic", r))
		}
	}()
	task()
}

// Post queues task without waiting for it. It reports false once the loop
// has stopped.
func (l *Loop) Post(task func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- task:
		return true
	case <-l.done:
		return false
	}
}

// Do runs task on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, task func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		task()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
