package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStartFiresImmediately(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	fired := make(chan time.Time, 1)

	if err := s.Start(context.Background(), func(at time.Time) { fired <- at }); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop(context.Background())

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("expected an immediate first run")
	}
}

func TestStartTwiceIsNoOp(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	var runs atomic.Int32

	job := func(time.Time) { runs.Add(1) }
	if err := s.Start(context.Background(), job); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start(context.Background(), job); err != nil {
		t.Fatalf("second start: %v", err)
	}
	defer s.Stop(context.Background())

	time.Sleep(50 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected one immediate run, got %d", got)
	}
}

func TestConcurrentStartStop(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Start(context.Background(), func(time.Time) {})
			_ = s.Stop(context.Background())
		}()
	}
	wg.Wait()

	// Whatever interleaving won, a final Stop leaves the scheduler idle
	// and restartable.
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("final stop: %v", err)
	}
	if err := s.Start(context.Background(), func(time.Time) {}); err != nil {
		t.Fatalf("restart: %v", err)
	}
	_ = s.Stop(context.Background())
}
