package notify

import (
	"context"
	"errors"
	"time"
)

// ErrQueueFull is returned by a non-blocking enqueue when the queue has no
// room. Callers treat it like any other delivery failure: log and move on.
var ErrQueueFull = errors.New("notification queue is full")

// MemoryQueue is the in-process fallback used when redis is not configured,
// and by tests.
type MemoryQueue struct {
	ch chan Message
}

func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = 256
	}
	return &MemoryQueue{ch: make(chan Message, capacity)}
}

// Enqueue never blocks. Pipeline operations enqueue from request handlers, so
// a full queue drops the message rather than stalling the caller.
func (q *MemoryQueue) Enqueue(_ context.Context, msg Message) error {
	select {
	case q.ch <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Message, error) {
	select {
	case msg := <-q.ch:
		return &msg, nil
	case <-time.After(timeout):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
