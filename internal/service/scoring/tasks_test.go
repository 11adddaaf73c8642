package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("submit runs to completion", func(t *testing.T) {
		r := NewTaskRunner()
		release := make(chan struct{})

		task := r.Submit("p1", func(context.Context) error {
			<-release
			return nil
		})

		assert.True(t, r.Running("p1"))
		assert.NoError(t, task.Err())

		close(release)
		require.NoError(t, task.Wait(ctx))
		assert.False(t, r.Running("p1"))
		assert.False(t, task.FinishedAt().IsZero())
	})

	t.Run("same key returns running task", func(t *testing.T) {
		r := NewTaskRunner()
		release := make(chan struct{})
		calls := 0

		first := r.Submit("p1", func(context.Context) error {
			calls++
			<-release
			return nil
		})
		second := r.Submit("p1", func(context.Context) error {
			calls++
			return nil
		})

		assert.Same(t, first, second)
		close(release)
		require.NoError(t, first.Wait(ctx))
		assert.Equal(t, 1, calls)
	})

	t.Run("error is reported", func(t *testing.T) {
		r := NewTaskRunner()
		boom := errors.New("boom")

		task := r.Submit("p1", func(context.Context) error { return boom })
		<-task.Done()
		assert.ErrorIs(t, task.Err(), boom)
	})

	t.Run("panic is captured", func(t *testing.T) {
		r := NewTaskRunner()

		task := r.Submit("p1", func(context.Context) error { panic("kaboom") })
		err := task.Wait(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kaboom")
		assert.False(t, r.Running("p1"))
	})

	t.Run("task context is detached", func(t *testing.T) {
		r := NewTaskRunner()
		reqCtx, cancel := context.WithCancel(ctx)
		cancel()

		var taskCtxErr error
		task := r.Submit("p1", func(taskCtx context.Context) error {
			taskCtxErr = taskCtx.Err()
			return nil
		})
		require.NoError(t, task.Wait(ctx))

		assert.Error(t, reqCtx.Err())
		assert.NoError(t, taskCtxErr)
	})

	t.Run("wait times out while tasks run", func(t *testing.T) {
		r := NewTaskRunner()
		release := make(chan struct{})
		r.Submit("p1", func(context.Context) error {
			<-release
			return nil
		})

		waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, r.Wait(waitCtx), context.DeadlineExceeded)

		close(release)
		assert.NoError(t, r.Wait(ctx))
	})
}
