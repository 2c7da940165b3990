package periodicjobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name     string
	interval time.Duration
	runs     atomic.Int64
	failFrom int64
}

func (j *countingJob) Name() string            { return j.name }
func (j *countingJob) Interval() time.Duration { return j.interval }

func (j *countingJob) Run(context.Context) error {
	n := j.runs.Add(1)
	if j.failFrom > 0 && n >= j.failFrom {
		return errors.New("boom")
	}
	return nil
}

func TestPeriodicTaskManager_RunsImmediatelyThenOnTicker(t *testing.T) {
	manager := NewPeriodicTaskManager()
	job := &countingJob{name: "counting", interval: 10 * time.Millisecond}
	manager.Register(job)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- manager.RunAll(ctx) }()

	require.Eventually(t, func() bool {
		return job.runs.Load() >= 3
	}, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestPeriodicTaskManager_FailedJobStopsItsScheduleOnly(t *testing.T) {
	manager := NewPeriodicTaskManager()
	failing := &countingJob{name: "failing", interval: time.Millisecond, failFrom: 1}
	healthy := &countingJob{name: "healthy", interval: time.Millisecond}
	manager.Register(failing)
	manager.Register(healthy)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- manager.RunAll(ctx) }()

	require.Eventually(t, func() bool {
		return healthy.runs.Load() >= 5
	}, time.Second, time.Millisecond)

	// the failing job ran once and never again
	assert.Equal(t, int64(1), failing.runs.Load())

	cancel()
	require.NoError(t, <-done)
}

func TestPeriodicTaskManager_NoJobs(t *testing.T) {
	manager := NewPeriodicTaskManager()
	assert.NoError(t, manager.RunAll(context.Background()))
}
