package worker_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/John-Hatton/Inventory/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestQueue_RunsTasksInSubmissionOrder(t *testing.T) {
	q := worker.New(8, zap.NewNop())
	defer q.Stop()

	var order []int
	var last <-chan error
	for i := 1; i <= 5; i++ {
		i := i
		last = q.Submit(func() error {
			order = append(order, i)
			return nil
		})
	}
	require.NoError(t, waitResult(t, last))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, order)
}

func TestQueue_ResultChannelCarriesError(t *testing.T) {
	q := worker.New(8, zap.NewNop())
	defer q.Stop()

	want := errors.New("boom")
	got := waitResult(t, q.Submit(func() error { return want }))
	assert.ErrorIs(t, got, want)
}

func TestQueue_RecoversFromPanic(t *testing.T) {
	q := worker.New(8, zap.NewNop())
	defer q.Stop()

	err := waitResult(t, q.Submit(func() error { panic("kaboom") }))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")

	// The worker survives and keeps serving tasks.
	require.NoError(t, waitResult(t, q.Submit(func() error { return nil })))
}

func TestQueue_StopDrainsPendingTasks(t *testing.T) {
	q := worker.New(8, zap.NewNop())

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		q.Submit(func() error {
			ran.Add(1)
			return nil
		})
	}
	q.Stop()
	assert.Equal(t, int32(5), ran.Load())
}

func TestQueue_SubmitAfterStop(t *testing.T) {
	q := worker.New(8, zap.NewNop())
	q.Stop()

	err := waitResult(t, q.Submit(func() error { return nil }))
	assert.ErrorIs(t, err, worker.ErrStopped)
}

func waitResult(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for task result")
		return nil
	}
}
