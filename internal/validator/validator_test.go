package validator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Hidden  string `json:"-" validate:"required"`
}

func TestStruct_CollectsFieldErrors(t *testing.T) {
	err := Struct(sample{Hidden: "x"})
	require.Error(t, err)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "content", errs[1].Field)

	assert.NoError(t, Struct(sample{Title: "t", Content: "c", Hidden: "h"}))
}

func TestStruct_FallsBackToGoNameForIgnoredJSONFields(t *testing.T) {
	err := Struct(sample{Title: "t", Content: "c"})

	var errs Errors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "Hidden", errs[0].Field)
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("Authorization", "Bearer abc", "printascii"))
	assert.NoError(t, Var("Authorization", "", "printascii"))

	err := Var("Authorization", "Bearer é", "printascii")
	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, "Authorization", errs[0].Field)
	assert.Equal(t, "printascii", errs[0].Tag)
}

func TestPool_RunsJobsAndReturnsResult(t *testing.T) {
	p := NewPool(2, 4)
	defer p.Close()

	wantErr := errors.New("bad input")
	assert.NoError(t, p.Do(context.Background(), func() error { return nil }))
	assert.ErrorIs(t, p.Do(context.Background(), func() error { return wantErr }), wantErr)
}

func TestPool_CallerWaitsForCompletion(t *testing.T) {
	p := NewPool(1, 0)
	defer p.Close()

	var ran atomic.Bool
	err := p.Do(context.Background(), func() error {
		time.Sleep(10 * time.Millisecond)
		ran.Store(true)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran.Load(), "Do returned before the job finished")
}

func TestPool_RecoversPanics(t *testing.T) {
	p := NewPool(1, 1)
	defer p.Close()

	err := p.Do(context.Background(), func() error { panic("boom") })
	require.Error(t, err)

	// the worker survives
	assert.NoError(t, p.Do(context.Background(), func() error { return nil }))
}

func TestPool_TimesOutWhenSaturated(t *testing.T) {
	p := NewPool(1, 0)
	defer p.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = p.Do(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Do(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestPool_ClosedPoolRejectsJobs(t *testing.T) {
	p := NewPool(1, 1)
	p.Close()
	p.Close() // idempotent

	err := p.Do(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_CloseReleasesQueuedCallers(t *testing.T) {
	p := NewPool(1, 1)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = p.Do(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	queued := make(chan error, 1)
	go func() {
		queued <- p.Do(context.Background(), func() error { return nil })
	}()
	require.Eventually(t, func() bool { return len(p.jobs) == 1 }, time.Second, time.Millisecond)

	closed := make(chan struct{})
	go func() {
		p.Close()
		close(closed)
	}()

	select {
	case err := <-queued:
		assert.ErrorIs(t, err, ErrPoolClosed)
	case <-time.After(time.Second):
		t.Fatal("queued caller still waiting after Close")
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return after the running job finished")
	}
}
