package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestQueueRunsRegisteredHandler(t *testing.T) {
	registry := NewRegistry()

	var ran atomic.Int32
	done := make(chan Task, 1)
	registry.Register("refresh", func(ctx context.Context, task Task) error {
		ran.Add(1)
		done <- task
		return nil
	})

	q := NewQueue(testLogger(t), nil, registry)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	eventID := uuid.New()
	if !q.Enqueue("refresh", eventID) {
		t.Fatalf("Enqueue returned false on empty queue")
	}

	select {
	case task := <-done:
		if task.EventID != eventID {
			t.Fatalf("task event id = %s, want %s", task.EventID, eventID)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("handler did not run")
	}
	if got := ran.Load(); got != 1 {
		t.Fatalf("handler ran %d times, want 1", got)
	}
}

func TestQueueUnknownTaskIsDropped(t *testing.T) {
	q := NewQueue(testLogger(t), nil, NewRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	if !q.Enqueue("no_such_task", uuid.New()) {
		t.Fatalf("Enqueue returned false")
	}
	// Nothing to assert beyond not panicking; give the worker a moment.
	time.Sleep(50 * time.Millisecond)
}

func TestQueueRecoversFromPanic(t *testing.T) {
	registry := NewRegistry()

	panicked := make(chan struct{}, 1)
	done := make(chan struct{}, 1)
	registry.Register("explode", func(ctx context.Context, task Task) error {
		panicked <- struct{}{}
		panic("boom")
	})
	registry.Register("after", func(ctx context.Context, task Task) error {
		done <- struct{}{}
		return nil
	})

	q := NewQueue(testLogger(t), nil, registry)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	q.Enqueue("explode", uuid.New())
	select {
	case <-panicked:
	case <-time.After(2 * time.Second):
		t.Fatalf("panicking handler did not run")
	}

	// The pool must survive the panic and keep serving tasks.
	q.Enqueue("after", uuid.New())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("queue stopped processing after panic")
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	registry := NewRegistry()
	registry.Register("noop", func(ctx context.Context, task Task) error { return nil })

	// Workers never started, so the channel fills up.
	q := NewQueue(testLogger(t), nil, registry)

	accepted := 0
	for i := 0; i < defaultQueueCapacity+10; i++ {
		if q.Enqueue("noop", uuid.New()) {
			accepted++
		}
	}
	if accepted != defaultQueueCapacity {
		t.Fatalf("accepted %d tasks, want %d", accepted, defaultQueueCapacity)
	}
}
