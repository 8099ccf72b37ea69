package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopTask struct{}

func (noopTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{Name: "noop"}
}

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (r *recordingEnqueuer) Enqueue(task backlite.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.tasks = append(r.tasks, task)
	return nil
}

func noopJob(name, schedule string) Job {
	return Job{Name: name, Schedule: schedule, Task: func() backlite.Task { return noopTask{} }}
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 6 * * *"))
	assert.NoError(t, ValidateSchedule("*/5 * * * *"))
	assert.Error(t, ValidateSchedule("every day"))
	assert.Error(t, ValidateSchedule("0 0 6 * * *"), "seconds field is not accepted")
}

func TestMaintenanceScheduler_StartStop(t *testing.T) {
	s := NewMaintenanceScheduler(&recordingEnqueuer{}, noopJob("overdue", "0 6 * * *"), noopJob("disabled", ""))

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.NextRunTime("overdue")
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.Nil(t, s.NextRunTime("disabled"))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime("overdue"))
}

func TestMaintenanceScheduler_InvalidSchedule(t *testing.T) {
	s := NewMaintenanceScheduler(&recordingEnqueuer{}, noopJob("bad", "not cron"))

	err := s.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.False(t, s.IsRunning())
}

func TestMaintenanceScheduler_StopsWithContext(t *testing.T) {
	s := NewMaintenanceScheduler(&recordingEnqueuer{}, noopJob("overdue", "0 6 * * *"))
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestMaintenanceScheduler_RunNow(t *testing.T) {
	enq := &recordingEnqueuer{}
	s := NewMaintenanceScheduler(enq, noopJob("overdue", "0 6 * * *"))

	require.NoError(t, s.RunNow("overdue"))
	assert.Len(t, enq.tasks, 1)

	assert.Error(t, s.RunNow("missing"))

	enq.err = errors.New("queue closed")
	assert.ErrorIs(t, s.RunNow("overdue"), enq.err)
}
