package notify

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryQueueRoundTrip(t *testing.T) {
	q := NewMemoryQueue(4)
	ctx := context.Background()

	sent := NewMessage(1, "an@example.com", "Update", "Hello")
	if err := q.Enqueue(ctx, sent); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	got, err := q.Dequeue(ctx, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if got == nil || got.ID != sent.ID {
		t.Fatalf("unexpected message: %+v", got)
	}

	// Nothing queued: a timed-out dequeue is nil, nil.
	got, err = q.Dequeue(ctx, 10*time.Millisecond)
	if err != nil || got != nil {
		t.Fatalf("expected empty dequeue, got %+v %v", got, err)
	}
}

func TestMemoryQueueEnqueueNeverBlocksWhenFull(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx := context.Background()

	if err := q.Enqueue(ctx, NewMessage(1, "an@example.com", "Update", "first")); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- q.Enqueue(ctx, NewMessage(2, "binh@example.com", "Update", "second"))
	}()
	select {
	case err := <-done:
		if !errors.Is(err, ErrQueueFull) {
			t.Fatalf("expected ErrQueueFull, got %v", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("enqueue blocked on a full queue")
	}
}
