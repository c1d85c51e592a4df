package queue

import (
	"context"
	"errors"
)

// Worker runs a queue as a lifecycle component.
type Worker[T any] struct {
	queue   *Queue[T]
	process func(context.Context, T) error
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewWorker[T any](q *Queue[T], process func(context.Context, T) error) *Worker[T] {
	return &Worker[T]{queue: q, process: process}
}

func (w *Worker[T]) Start(ctx context.Context) error {
	if w.done != nil {
		return errors.New("worker already started")
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w.cancel = cancel
	w.done = make(chan struct{})
	go func() {
		defer close(w.done)
		_ = w.queue.Run(runCtx, w.process)
	}()
	return nil
}

// Stop cancels the worker and waits for the in-flight item to finish or ctx
// to expire.
func (w *Worker[T]) Stop(ctx context.Context) error {
	if w.done == nil {
		return nil
	}
	w.cancel()
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
