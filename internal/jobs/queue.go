package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/eventjudge-backend/internal/observability"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
	"github.com/yungbote/eventjudge-backend/internal/utils"
)

// Task is one unit of background work keyed by its registered handler name.
type Task struct {
	Name       string
	EventID    uuid.UUID
	EnqueuedAt time.Time
}

// Handler runs one task type. Errors are logged and counted, not retried;
// every producing path re-enqueues on its next trigger.
type Handler func(ctx context.Context, task Task) error

// Registry maps task names to handlers. Registration happens during wiring,
// before Start, so reads are not locked.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

func (r *Registry) Get(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Queue is a channel-backed task queue drained by a small worker pool.
type Queue struct {
	log      *logger.Logger
	metrics  *observability.Metrics
	registry *Registry
	tasks    chan Task
	wg       sync.WaitGroup
}

const defaultQueueCapacity = 256

func NewQueue(baseLog *logger.Logger, metrics *observability.Metrics, registry *Registry) *Queue {
	return &Queue{
		log:      baseLog.With("component", "JobQueue"),
		metrics:  metrics,
		registry: registry,
		tasks:    make(chan Task, defaultQueueCapacity),
	}
}

// Enqueue is non-blocking; a full queue drops the task and returns false.
func (q *Queue) Enqueue(name string, eventID uuid.UUID) bool {
	task := Task{Name: name, EventID: eventID, EnqueuedAt: time.Now()}
	select {
	case q.tasks <- task:
		q.metrics.SetQueueDepth(len(q.tasks))
		return true
	default:
		q.log.Warn("Task queue full, dropping task", "task", name, "event_id", eventID)
		return false
	}
}

// Start launches the worker pool. Workers drain remaining tasks and exit
// when ctx is cancelled; Wait blocks until they are done.
func (q *Queue) Start(ctx context.Context) {
	concurrency := utils.GetEnvAsInt("WORKER_CONCURRENCY", 4, q.log)
	if concurrency < 1 {
		concurrency = 1
	}
	q.log.Info("Starting job worker pool", "concurrency", concurrency)

	for i := 0; i < concurrency; i++ {
		workerID := i + 1
		q.wg.Add(1)
		go q.runLoop(ctx, workerID)
	}
}

func (q *Queue) Wait() {
	q.wg.Wait()
}

func (q *Queue) runLoop(ctx context.Context, workerID int) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			q.log.Info("Worker loop stopped", "worker_id", workerID)
			return
		case task := <-q.tasks:
			q.metrics.SetQueueDepth(len(q.tasks))
			q.run(ctx, workerID, task)
		}
	}
}

func (q *Queue) run(ctx context.Context, workerID int, task Task) {
	h, ok := q.registry.Get(task.Name)
	if !ok {
		q.log.Warn("No handler registered for task",
			"worker_id", workerID,
			"task", task.Name,
			"event_id", task.EventID,
		)
		return
	}

	start := time.Now()
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				q.log.Error("Task handler panic",
					"worker_id", workerID,
					"task", task.Name,
					"event_id", task.EventID,
					"panic", r,
				)
				err = &panicError{Val: r}
			}
		}()
		err = h(ctx, task)
	}()

	q.metrics.ObserveJob(task.Name, err, time.Since(start))
	if err != nil {
		q.log.Error("Task failed",
			"worker_id", workerID,
			"task", task.Name,
			"event_id", task.EventID,
			"error", err.Error(),
		)
		return
	}
	q.log.Info("Task completed",
		"worker_id", workerID,
		"task", task.Name,
		"event_id", task.EventID,
		"duration", time.Since(start).String(),
	)
}

type panicError struct{ Val any }

func (e *panicError) Error() string { return "panic: unexpected error" }
