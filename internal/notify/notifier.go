package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message is one candidate notification. Delivery is best-effort: pipeline
// operations enqueue and move on, and a failed enqueue is only logged.
type Message struct {
	ID             string    `json:"id"`
	CandidateID    uint      `json:"candidate_id"`
	CandidateEmail string    `json:"candidate_email"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	EnqueuedAt     time.Time `json:"enqueued_at"`
}

// NewMessage stamps a message with an id and enqueue time.
func NewMessage(candidateID uint, email, subject, body string) Message {
	return Message{
		ID:             uuid.NewString(),
		CandidateID:    candidateID,
		CandidateEmail: email,
		Subject:        subject,
		Body:           body,
		EnqueuedAt:     time.Now(),
	}
}

// Queue decouples the pipeline from delivery.
type Queue interface {
	Enqueue(ctx context.Context, msg Message) error
	// Dequeue blocks up to timeout; a nil message means nothing was ready.
	Dequeue(ctx context.Context, timeout time.Duration) (*Message, error)
}

// Sender performs the actual delivery from the worker side.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
