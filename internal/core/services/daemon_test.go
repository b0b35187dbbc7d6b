package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openeats/dinesync/internal/core/domain"
	"github.com/openeats/dinesync/internal/core/ports/driving"
)

type stubRunner struct {
	mu   sync.Mutex
	runs int
	err  error
}

func (s *stubRunner) Run(ctx context.Context) (*domain.SyncSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.SyncSummary{}, nil
}

func (s *stubRunner) Status() driving.SyncStatus {
	return driving.SyncStatus{}
}

func (s *stubRunner) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func TestDaemon_RunsImmediatelyThenOnTicks(t *testing.T) {
	runner := &stubRunner{}
	daemon := NewDaemon(runner, 50*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- daemon.Start(context.Background()) }()

	require.Eventually(t, func() bool { return runner.count() >= 3 },
		2*time.Second, 10*time.Millisecond)

	daemon.Stop()
	require.NoError(t, <-done)
}

func TestDaemon_StopEndsStart(t *testing.T) {
	runner := &stubRunner{}
	daemon := NewDaemon(runner, time.Hour)

	done := make(chan error, 1)
	go func() { done <- daemon.Start(context.Background()) }()

	require.Eventually(t, func() bool { return runner.count() == 1 },
		time.Second, 10*time.Millisecond)

	daemon.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestDaemon_ContextCancelEndsStart(t *testing.T) {
	runner := &stubRunner{}
	daemon := NewDaemon(runner, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- daemon.Start(ctx) }()

	require.Eventually(t, func() bool { return runner.count() == 1 },
		time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestDaemon_RunFailureKeepsTicking(t *testing.T) {
	runner := &stubRunner{err: domain.ErrSyncInProgress}
	daemon := NewDaemon(runner, 30*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- daemon.Start(context.Background()) }()

	require.Eventually(t, func() bool { return runner.count() >= 2 },
		2*time.Second, 10*time.Millisecond)

	daemon.Stop()
	require.NoError(t, <-done)
}
