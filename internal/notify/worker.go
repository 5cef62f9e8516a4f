package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Worker drains the queue and hands messages to the sender. Send failures are
// logged and dropped; notifications are not part of any transactional core.
type Worker struct {
	queue   Queue
	sender  Sender
	workers int
}

func NewWorker(queue Queue, sender Sender, workers int) *Worker {
	if workers <= 0 {
		workers = 2
	}
	return &Worker{queue: queue, sender: sender, workers: workers}
}

func (w *Worker) Start(ctx context.Context) {
	log.Info().Int("workers", w.workers).Msg("Starting notification workers")
	for i := 0; i < w.workers; i++ {
		go w.loop(ctx, i)
	}
}

func (w *Worker) loop(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("Notification worker stopping")
			return
		default:
			msg, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				log.Warn().Err(err).Int("worker", id).Msg("Failed to dequeue notification")
				continue
			}
			if msg == nil {
				continue
			}
			if err := w.sender.Send(ctx, *msg); err != nil {
				log.Warn().Err(err).Str("message_id", msg.ID).Uint("candidate_id", msg.CandidateID).
					Msg("Failed to deliver notification")
			}
		}
	}
}

// LogSender records deliveries instead of sending mail. Actual mail delivery
// is out of scope; this is the default sink behind the queue.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("message_id", msg.ID).
		Uint("candidate_id", msg.CandidateID).
		Str("email", msg.CandidateEmail).
		Str("subject", msg.Subject).
		Msg("Candidate notification")
	return nil
}
