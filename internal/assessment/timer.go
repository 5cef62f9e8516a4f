package assessment

import (
	"context"
	"errors"
	"sync"
	"time"
)

// TimerState is the countdown lifecycle. Expired and Stopped are terminal.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerExpired
	TimerStopped
)

func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "Idle"
	case TimerRunning:
		return "Running"
	case TimerExpired:
		return "Expired"
	case TimerStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Checkpoint identifies a warning threshold. Thresholds are computed from the
// original total so they stay correct regardless of tick drift.
type Checkpoint int

const (
	CheckpointHalfTime Checkpoint = iota
	CheckpointQuarterTime
	CheckpointFinalCountdown
)

const finalCountdownSeconds = 10

var ErrTimerAlreadyStarted = errors.New("timer has already been started")

// Timer is a one-shot countdown. Every state read goes through the mutex so a
// tick always sees the current stopped/finalized state, never one captured at
// start.
type Timer struct {
	mu        sync.Mutex
	state     TimerState
	total     int // seconds
	remaining int
	fired     map[Checkpoint]bool
	expired   bool

	onCheckpoint func(Checkpoint)
	onExpire     func()
}

// NewTimer creates an idle timer. Callbacks may be nil; OnExpire is invoked at
// most once, after the transition to Expired.
func NewTimer(onCheckpoint func(Checkpoint), onExpire func()) *Timer {
	return &Timer{
		state:        TimerIdle,
		fired:        make(map[Checkpoint]bool),
		onCheckpoint: onCheckpoint,
		onExpire:     onExpire,
	}
}

// Start arms the countdown with the posting's time allotment. It fails rather
// than restarting: one timer per session, no duplicate intervals.
func (t *Timer) Start(minutes int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TimerIdle {
		return ErrTimerAlreadyStarted
	}
	if minutes <= 0 {
		return errors.New("duration must be positive")
	}
	t.total = minutes * 60
	t.remaining = t.total
	t.state = TimerRunning
	return nil
}

// Tick advances the countdown by one second. It is the single state step; Run
// drives it from a wall-clock ticker and tests drive it directly.
func (t *Timer) Tick() {
	t.mu.Lock()
	if t.state != TimerRunning {
		t.mu.Unlock()
		return
	}
	if t.remaining > 0 {
		t.remaining--
	}

	var checkpoints []Checkpoint
	for cp, threshold := range map[Checkpoint]int{
		CheckpointHalfTime:       t.total / 2,
		CheckpointQuarterTime:    t.total / 4,
		CheckpointFinalCountdown: finalCountdownSeconds,
	} {
		if t.remaining == threshold && !t.fired[cp] {
			t.fired[cp] = true
			checkpoints = append(checkpoints, cp)
		}
	}

	expireNow := false
	if t.remaining == 0 {
		t.state = TimerExpired
		if !t.expired {
			t.expired = true
			expireNow = true
		}
	}
	onCheckpoint, onExpire := t.onCheckpoint, t.onExpire
	t.mu.Unlock()

	// Callbacks run outside the lock so they may query the timer.
	if onCheckpoint != nil {
		for _, cp := range checkpoints {
			onCheckpoint(cp)
		}
	}
	if expireNow && onExpire != nil {
		onExpire()
	}
}

// Run ticks once per second until the timer leaves Running or the context is
// cancelled.
func (t *Timer) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-ticker.C:
			t.Tick()
			if st := t.State(); st != TimerRunning {
				return
			}
		}
	}
}

// Stop halts the countdown permanently. Safe to call in any state; ticks and
// checkpoint callbacks never occur after it returns.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == TimerRunning || t.state == TimerIdle {
		t.state = TimerStopped
	}
}

func (t *Timer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Remaining reports the seconds left, clamped at zero.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Total reports the original allotment in seconds.
func (t *Timer) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}
