package assessment

import (
	"context"
	"errors"
	"sync"
)

// State is the session flow lifecycle as seen by an embedding UI. Terminal
// states (AlreadyCompleted, Abandoned, Done) tell the UI to replace its
// navigation history so the assessment cannot be re-entered by going back.
type State int

const (
	// StateIdle is before Start. The timer never runs here.
	StateIdle State = iota
	// StateInProgress presents questions under the running timer.
	StateInProgress
	// StateSubmitted means answers are persisted and scored; the candidate
	// chooses between finalizing and attaching feedback.
	StateSubmitted
	// StateAlreadyCompleted is the terminal guard view: a completed session
	// exists, no questions were fetched and the timer never started.
	StateAlreadyCompleted
	// StateAbandoned is the terminal early-exit view.
	StateAbandoned
	// StateDone is the terminal thank-you view.
	StateDone
)

func (s State) Terminal() bool {
	return s == StateAlreadyCompleted || s == StateAbandoned || s == StateDone
}

var (
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrNotStarted         = errors.New("session has not been started")
	ErrSessionTerminal    = errors.New("session is in a terminal state")
	ErrNoSessionHandle    = errors.New("no persisted session to operate on")
)

// Controller sequences one candidate's assessment: guard check, question
// navigation, answer accumulation keyed by question ID, submission and the
// finalize-or-feedback branch.
type Controller struct {
	mu sync.Mutex

	gateway     Gateway
	timer       *Timer
	candidateID uint
	postingID   uint

	state     State
	questions []Question
	idx       int
	answers   map[uint]Answer // keyed by server-assigned question ID
	pending   string          // tentative answer for the current question
	inFlight  bool
	sessionID uint
	lastErr   error
}

// NewController builds a controller for one (candidate, posting) session.
// Checkpoint warnings are forwarded to onCheckpoint for display.
func NewController(gateway Gateway, candidateID, postingID uint, onCheckpoint func(Checkpoint)) *Controller {
	c := &Controller{
		gateway:     gateway,
		candidateID: candidateID,
		postingID:   postingID,
		state:       StateIdle,
		answers:     make(map[uint]Answer),
	}
	c.timer = NewTimer(onCheckpoint, func() {
		// Expiry is the one autonomous trigger: submit whatever has been
		// accumulated, even nothing.
		c.autoSubmit()
	})
	return c
}

// Start consults the completion guard, then fetches level, questions and
// duration. If the session is already completed no question data is fetched
// and the timer never starts. If the duration fetch fails the whole start
// fails; an untimed session is never allowed.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrSessionTerminal
	}
	c.mu.Unlock()

	completed, err := c.gateway.CheckCompleted(ctx, c.candidateID, c.postingID)
	if err != nil {
		return err
	}
	if completed {
		c.mu.Lock()
		c.state = StateAlreadyCompleted
		c.mu.Unlock()
		return nil
	}

	level, err := c.gateway.FetchLevel(ctx, c.candidateID)
	if err != nil {
		return err
	}
	questions, err := c.gateway.FetchQuestions(ctx, c.postingID, level)
	if err != nil {
		return err
	}
	minutes, err := c.gateway.FetchDuration(ctx, c.postingID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.timer.Start(minutes); err != nil {
		return err
	}
	c.questions = questions
	c.idx = 0
	c.state = StateInProgress
	return nil
}

// Timer exposes the countdown for display and for driving Run.
func (c *Controller) Timer() *Timer { return c.timer }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Questions returns the fetched question set. Empty is a valid state.
func (c *Controller) Questions() []Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.questions
}

// Current returns the question at the cursor plus any answer to repopulate
// the selection from, stored or tentative.
func (c *Controller) Current() (Question, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInProgress {
		return Question{}, "", ErrNotStarted
	}
	if len(c.questions) == 0 {
		return Question{}, "", errors.New("no questions available")
	}
	q := c.questions[c.idx]
	if c.pending != "" {
		return q, c.pending, nil
	}
	if a, ok := c.answers[q.ID]; ok {
		return q, a.SelectedAnswer, nil
	}
	return q, "", nil
}

// SelectAnswer records the tentative answer for the current question. Nothing
// is persisted until Advance.
func (c *Controller) SelectAnswer(option string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInProgress {
		return ErrNotStarted
	}
	c.pending = option
	return nil
}

// Advance upserts the current answer into the accumulated set, replacing any
// prior answer for that question. On the last question it submits the full
// set instead of moving the cursor.
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateInProgress {
		c.mu.Unlock()
		return ErrNotStarted
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if len(c.questions) == 0 {
		c.mu.Unlock()
		return errors.New("no questions available")
	}

	q := c.questions[c.idx]
	answer := c.pending
	if answer == "" {
		if stored, ok := c.answers[q.ID]; ok {
			answer = stored.SelectedAnswer
		}
	}
	if answer == "" {
		c.mu.Unlock()
		return ErrNoAnswerSelected
	}
	c.answers[q.ID] = Answer{
		QuestionID:     q.ID,
		Question:       q.Text,
		SelectedAnswer: answer,
		CorrectAnswer:  q.CorrectAnswer,
	}
	c.pending = ""

	last := c.idx == len(c.questions)-1
	if !last {
		c.idx++
		c.mu.Unlock()
		return nil
	}

	c.inFlight = true
	c.mu.Unlock()
	return c.submit(ctx, true)
}

// GoBack moves the cursor one question back, floored at the first question.
// No persistence side effect.
func (c *Controller) GoBack() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInProgress {
		return ErrNotStarted
	}
	if c.idx > 0 {
		c.idx--
	}
	c.pending = ""
	return nil
}

// Abandon persists whatever has been accumulated so far as an incomplete
// session, stops the timer and leaves the flow. Partial submission must not
// error; an empty answer set is still persisted.
func (c *Controller) Abandon(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateInProgress {
		c.mu.Unlock()
		return ErrNotStarted
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	c.inFlight = true
	answers := c.accumulatedLocked()
	c.mu.Unlock()

	result, err := c.gateway.PersistSession(ctx, c.candidateID, c.postingID, answers, false)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		return err
	}
	if result != nil {
		c.sessionID = result.SessionID
	}
	c.timer.Stop()
	c.state = StateAbandoned
	return nil
}

// Finalize confirms the submitted session as fully complete and enters the
// terminal state. The persist is idempotent from the caller's point of view:
// the server answering "already completed" is success here.
func (c *Controller) Finalize(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateSubmitted {
		c.mu.Unlock()
		return ErrSessionTerminal
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	c.inFlight = true
	answers := c.accumulatedLocked()
	c.mu.Unlock()

	result, err := c.gateway.PersistSession(ctx, c.candidateID, c.postingID, answers, true)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil && !errors.Is(err, ErrAlreadyCompleted) {
		return err
	}
	if result != nil {
		c.sessionID = result.SessionID
	}
	c.state = StateDone
	return nil
}

// GiveFeedback attaches free-text feedback to the submitted session and
// enters the terminal state.
func (c *Controller) GiveFeedback(ctx context.Context, text string) error {
	c.mu.Lock()
	if c.state != StateSubmitted {
		c.mu.Unlock()
		return ErrSessionTerminal
	}
	if c.sessionID == 0 {
		c.mu.Unlock()
		return ErrNoSessionHandle
	}
	sessionID := c.sessionID
	c.mu.Unlock()

	if err := c.gateway.AttachFeedback(ctx, sessionID, text); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateDone
	return nil
}

// SessionID returns the persisted session handle, zero before first persist.
func (c *Controller) SessionID() uint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// LastError reports the most recent submission failure, nil after a
// successful persist. The expiry auto-submit has no caller to hand its error
// to, so embedding UIs read it here.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) autoSubmit() {
	c.mu.Lock()
	if c.state != StateInProgress || c.inFlight {
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.mu.Unlock()
	// Expiry submits the accumulated set as-is, empty included. There is no
	// caller to hand a failure to; submit records it for LastError.
	_ = c.submit(context.Background(), true)
}

// submit persists the accumulated answers as a completed session. The caller
// must have set inFlight.
func (c *Controller) submit(ctx context.Context, completed bool) error {
	c.mu.Lock()
	answers := c.accumulatedLocked()
	c.mu.Unlock()

	result, err := c.gateway.PersistSession(ctx, c.candidateID, c.postingID, answers, completed)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		if errors.Is(err, ErrAlreadyCompleted) {
			// A handled terminal outcome, not a failure.
			c.timer.Stop()
			c.state = StateAlreadyCompleted
			c.lastErr = nil
			return err
		}
		c.lastErr = err
		return err
	}
	c.lastErr = nil
	c.sessionID = result.SessionID
	c.timer.Stop()
	c.state = StateSubmitted
	return nil
}

// accumulatedLocked snapshots the answers in question order. Caller holds mu.
func (c *Controller) accumulatedLocked() []Answer {
	answers := make([]Answer, 0, len(c.answers))
	for _, q := range c.questions {
		if a, ok := c.answers[q.ID]; ok {
			answers = append(answers, a)
		}
	}
	return answers
}
