// Package queue dispatches items to a single paced worker in arrival order.
package queue

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/guessbot/internal/infra"
	"github.com/iamwavecut/guessbot/internal/observability"
)

type Queue[T any] struct {
	mutex  sync.Mutex
	items  []T
	signal chan struct{}
	delay  time.Duration
	l      *log.Entry
}

func New[T any](delay time.Duration) *Queue[T] {
	return &Queue[T]{
		signal: make(chan struct{}, 1),
		delay:  delay,
		l:      log.WithField("context", "queue"),
	}
}

// Enqueue appends item to the tail and returns the number of items waiting,
// item included. It never blocks.
func (q *Queue[T]) Enqueue(item T) int {
	n, _ := q.TryEnqueue(item, 0)
	return n
}

// TryEnqueue appends item unless limit items are already waiting. A limit
// below one means no limit. The check and the append are atomic.
func (q *Queue[T]) TryEnqueue(item T, limit int) (int, bool) {
	q.mutex.Lock()
	if limit > 0 && len(q.items) >= limit {
		n := len(q.items)
		q.mutex.Unlock()
		return n, false
	}
	q.items = append(q.items, item)
	n := len(q.items)
	q.mutex.Unlock()

	observability.SetQueueDepth(n)
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return n, true
}

// Len returns the number of items not yet handed to the worker.
func (q *Queue[T]) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.items)
}

func (q *Queue[T]) Delay() time.Duration {
	return q.delay
}

func (q *Queue[T]) pop() (T, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	observability.SetQueueDepth(len(q.items))
	return item, true
}

// Run hands items to process one at a time until ctx is done, sleeping the
// queue delay after each item. Failures of process are logged and never
// stop the loop.
func (q *Queue[T]) Run(ctx context.Context, process func(context.Context, T) error) error {
	q.l.Trace("worker go")
	for {
		item, ok := q.pop()
		if !ok {
			select {
			case <-ctx.Done():
				q.l.Info("shutting down worker by cancelled context")
				return ctx.Err()
			case <-q.signal:
				continue
			}
		}

		err := infra.CatchPanic(func() error { return process(ctx, item) })
		if err != nil {
			q.l.WithError(err).Error("cant process item")
			observability.RecordQueueItem("failed")
		} else {
			observability.RecordQueueItem("ok")
		}

		if q.delay <= 0 {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		timer := time.NewTimer(q.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			q.l.Info("shutting down worker by cancelled context")
			return ctx.Err()
		case <-timer.C:
		}
	}
}
