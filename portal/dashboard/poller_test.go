package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentportal/portal/model"
)

type listerFunc func(ctx context.Context) ([]model.Student, error)

func (f listerFunc) List(ctx context.Context) ([]model.Student, error) { return f(ctx) }

func receive(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.True(t, ok, "channel closed")
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no result")
	}
	return Result{}
}

func TestPoller_FetchesImmediatelyThenOnTick(t *testing.T) {
	var calls int32
	p := NewPoller(listerFunc(func(ctx context.Context) ([]model.Student, error) {
		n := atomic.AddInt32(&calls, 1)
		return []model.Student{{"_id": string(rune('a' + n - 1))}}, nil
	}), 20*time.Millisecond)

	ch := p.Start(context.Background())
	first := receive(t, ch)
	second := receive(t, ch)
	p.Stop()

	require.NoError(t, first.Err)
	assert.Equal(t, "a", first.Students[0].ID())
	assert.Equal(t, "b", second.Students[0].ID())
}

func TestPoller_ErrorsAreDelivered(t *testing.T) {
	p := NewPoller(listerFunc(func(ctx context.Context) ([]model.Student, error) {
		return nil, errors.New("down")
	}), time.Hour)

	r := receive(t, p.Start(context.Background()))
	p.Stop()

	assert.EqualError(t, r.Err, "down")
}

func TestPoller_SlowFetchDoesNotBlockNextTick(t *testing.T) {
	var calls int32
	p := NewPoller(listerFunc(func(ctx context.Context) ([]model.Student, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []model.Student{}, nil
	}), 10*time.Millisecond)

	r := receive(t, p.Start(context.Background()))
	p.Stop()

	assert.NoError(t, r.Err)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestPoller_StopCancelsInFlightAndClosesChannel(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	p := NewPoller(listerFunc(func(ctx context.Context) ([]model.Student, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return nil, ctx.Err()
	}), time.Hour)

	ch := p.Start(context.Background())
	<-started
	p.Stop()

	select {
	case <-cancelled:
	default:
		t.Fatal("in-flight fetch was not cancelled")
	}
	_, ok := <-ch
	assert.False(t, ok)

	p.Stop()
}

func TestPoller_StopWithoutStart(t *testing.T) {
	p := NewPoller(listerFunc(func(ctx context.Context) ([]model.Student, error) {
		return nil, nil
	}), 0)

	p.Stop()

	_, ok := <-p.Results()
	assert.False(t, ok)
}
