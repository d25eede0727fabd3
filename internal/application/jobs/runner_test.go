package jobs_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/application/jobs"
	"github.com/FluentFlier/aegis/pkg/observability"
)

func TestRunner_BoundsConcurrency(t *testing.T) {
	runner := jobs.NewRunner(2, observability.NopLogger())

	started := make(chan struct{}, 4)
	release := make(chan struct{})
	var completed atomic.Int32

	for i := 0; i < 4; i++ {
		runner.Submit("train", func(ctx context.Context) {
			started <- struct{}{}
			<-release
			completed.Add(1)
		})
	}

	// Two slots fill immediately.
	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not start")
		}
	}

	// The third job cannot start while both slots are held.
	select {
	case <-started:
		t.Fatal("third job started past the concurrency limit")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)

	// The queued jobs take over the freed slots.
	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("queued job did not start")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, runner.Shutdown(ctx))
	assert.Equal(t, int32(4), completed.Load())
}

func TestRunner_ShutdownWaitsForRunningJobs(t *testing.T) {
	runner := jobs.NewRunner(1, observability.NopLogger())

	var completed atomic.Bool
	running := make(chan struct{})
	runner.Submit("train", func(ctx context.Context) {
		close(running)
		time.Sleep(50 * time.Millisecond)
		completed.Store(true)
	})
	<-running

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, runner.Shutdown(ctx))
	assert.True(t, completed.Load())
}

func TestRunner_ShutdownDeadline(t *testing.T) {
	runner := jobs.NewRunner(1, observability.NopLogger())

	release := make(chan struct{})
	defer close(release)
	running := make(chan struct{})
	runner.Submit("train", func(ctx context.Context) {
		close(running)
		<-release
	})
	<-running

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, runner.Shutdown(ctx), context.DeadlineExceeded)
}

func TestRunner_RejectsAfterShutdown(t *testing.T) {
	runner := jobs.NewRunner(1, observability.NopLogger())
	require.NoError(t, runner.Shutdown(context.Background()))

	var ran atomic.Bool
	runner.Submit("train", func(ctx context.Context) {
		ran.Store(true)
	})

	time.Sleep(50 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestRunner_RecoversFromPanics(t *testing.T) {
	runner := jobs.NewRunner(1, observability.NopLogger())

	done := make(chan struct{})
	runner.Submit("train", func(ctx context.Context) {
		defer close(done)
		panic("estimator blew up")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("panicking job never ran")
	}
	require.NoError(t, runner.Shutdown(context.Background()))
}
