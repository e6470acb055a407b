package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorcore/internal/testutil"
)

func TestScheduler_RunsJobsIndependently(t *testing.T) {
	var fast, slow atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	sched := NewScheduler(testutil.Logger(),
		Job{
			Name:     "pending",
			Interval: 10 * time.Millisecond,
			Run: func(ctx context.Context) error {
				fast.Add(1)
				return nil
			},
		},
		Job{
			Name:     "full_sync",
			Interval: time.Hour,
			Run: func(ctx context.Context) error {
				slow.Add(1)
				return errors.New("upstream down")
			},
		},
	)

	done := make(chan error, 1)
	go func() { done <- sched.Start(ctx) }()

	require.Eventually(t, func() bool { return fast.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	// A failing job neither stops the scheduler nor reruns before its interval.
	assert.Equal(t, int32(1), slow.Load())
}

func TestScheduler_SkipInitialWaitsForFirstTick(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	sched := NewScheduler(testutil.Logger(), Job{
		Name:        "full_sync",
		Interval:    time.Hour,
		SkipInitial: true,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	err := sched.Start(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, runs.Load())
}

func TestScheduler_AppliesRunTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	deadlines := make(chan time.Duration, 1)

	sched := NewScheduler(testutil.Logger(), Job{
		Name:     "pending",
		Interval: time.Hour,
		Timeout:  time.Minute,
		Run: func(ctx context.Context) error {
			dl, ok := ctx.Deadline()
			if ok {
				deadlines <- time.Until(dl)
			}
			cancel()
			return nil
		},
	})

	_ = sched.Start(ctx)

	select {
	case left := <-deadlines:
		assert.LessOrEqual(t, left, time.Minute)
		assert.Greater(t, left, 50*time.Second)
	default:
		t.Fatal("run context had no deadline")
	}
}

func TestScheduler_RejectsInvalidJobs(t *testing.T) {
	err := NewScheduler(testutil.Logger(), Job{Name: "broken", Interval: 0, Run: func(context.Context) error { return nil }}).
		Start(context.Background())
	assert.Error(t, err)

	err = NewScheduler(testutil.Logger(), Job{Name: "empty", Interval: time.Second}).Start(context.Background())
	assert.Error(t, err)
}
