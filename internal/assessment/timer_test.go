package assessment

import (
	"sync"
	"testing"
)

type checkpointRecorder struct {
	mu    sync.Mutex
	fired []Checkpoint
}

func (r *checkpointRecorder) record(cp Checkpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, cp)
}

func (r *checkpointRecorder) count(cp Checkpoint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.fired {
		if f == cp {
			n++
		}
	}
	return n
}

func TestTimerTickCountUntilExpiry(t *testing.T) {
	for _, minutes := range []int{1, 2, 5} {
		expires := 0
		timer := NewTimer(nil, func() { expires++ })
		if err := timer.Start(minutes); err != nil {
			t.Fatalf("expected start to succeed, got %v", err)
		}

		total := minutes * 60
		for i := 0; i < total-1; i++ {
			timer.Tick()
			if st := timer.State(); st != TimerRunning {
				t.Fatalf("minutes=%d: expected Running after %d ticks, got %v", minutes, i+1, st)
			}
		}
		if expires != 0 {
			t.Fatalf("minutes=%d: expired before the final tick", minutes)
		}

		timer.Tick()
		if st := timer.State(); st != TimerExpired {
			t.Fatalf("minutes=%d: expected Expired after %d ticks, got %v", minutes, total, st)
		}
		if expires != 1 {
			t.Fatalf("minutes=%d: expected exactly one expiry callback, got %d", minutes, expires)
		}

		// Further ticks are no-ops.
		timer.Tick()
		timer.Tick()
		if expires != 1 {
			t.Fatalf("minutes=%d: expiry refired after terminal state, got %d", minutes, expires)
		}
	}
}

func TestTimerCheckpointsFireOnceAtThresholds(t *testing.T) {
	rec := &checkpointRecorder{}
	timer := NewTimer(rec.record, nil)
	if err := timer.Start(1); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	total := 60

	seenAt := make(map[Checkpoint]int)
	for i := 0; i < total; i++ {
		before := len(rec.fired)
		timer.Tick()
		for _, cp := range rec.fired[before:] {
			seenAt[cp] = timer.Remaining()
		}
	}

	wantAt := map[Checkpoint]int{
		CheckpointHalfTime:       total / 2,
		CheckpointQuarterTime:    total / 4,
		CheckpointFinalCountdown: 10,
	}
	for cp, want := range wantAt {
		if rec.count(cp) != 1 {
			t.Fatalf("checkpoint %d fired %d times, want 1", cp, rec.count(cp))
		}
		if seenAt[cp] != want {
			t.Fatalf("checkpoint %d fired at remaining=%d, want %d", cp, seenAt[cp], want)
		}
	}
}

func TestTimerStopHaltsTicksAndCallbacks(t *testing.T) {
	rec := &checkpointRecorder{}
	expires := 0
	timer := NewTimer(rec.record, func() { expires++ })
	if err := timer.Start(1); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}

	for i := 0; i < 20; i++ {
		timer.Tick()
	}
	timer.Stop()
	if st := timer.State(); st != TimerStopped {
		t.Fatalf("expected Stopped, got %v", st)
	}
	remaining := timer.Remaining()

	for i := 0; i < 100; i++ {
		timer.Tick()
	}
	if timer.Remaining() != remaining {
		t.Fatalf("remaining changed after Stop: %d -> %d", remaining, timer.Remaining())
	}
	if expires != 0 {
		t.Fatalf("expiry fired on a stopped timer")
	}
	if len(rec.fired) != 0 {
		t.Fatalf("checkpoints fired after Stop with remaining=%d: %v", remaining, rec.fired)
	}
}

func TestTimerCannotStartTwice(t *testing.T) {
	timer := NewTimer(nil, nil)
	if err := timer.Start(1); err != nil {
		t.Fatalf("expected first start to succeed, got %v", err)
	}
	if err := timer.Start(1); err != ErrTimerAlreadyStarted {
		t.Fatalf("expected ErrTimerAlreadyStarted, got %v", err)
	}
}

func TestTimerRejectsNonPositiveDuration(t *testing.T) {
	timer := NewTimer(nil, nil)
	if err := timer.Start(0); err == nil {
		t.Fatal("expected error for zero duration")
	}
	if st := timer.State(); st != TimerIdle {
		t.Fatalf("expected timer to stay Idle, got %v", st)
	}
}
