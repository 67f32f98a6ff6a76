package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnceExecutesAllJobs(t *testing.T) {
	s := NewScheduler()

	var first, second atomic.Int32
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second.Add(1)
		return errors.New("boom") // logged, must not stop the rest
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestStartRunsJobImmediately(t *testing.T) {
	s := NewScheduler()

	ran := make(chan struct{})
	var once atomic.Bool
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		if once.CompareAndSwap(false, true) {
			close(ran)
		}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not fire on start")
	}
}

func TestPanickingJobDoesNotKillScheduler(t *testing.T) {
	s := NewScheduler()

	s.AddJob("panics", time.Hour, func(ctx context.Context) error {
		panic("boom")
	})

	s.Start()
	// Stop returns only if the panic was contained and the goroutine exited
	s.Stop()
}
