package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_InvalidExpression(t *testing.T) {
	_, err := NewScheduler("not a cron", func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestScheduler_Next(t *testing.T) {
	s, err := NewScheduler("0 30 22 * * 1-5", func(context.Context) error { return nil })
	require.NoError(t, err)

	// Friday 2021-02-05 23:00 UTC rolls over to Monday.
	from := time.Date(2021, 2, 5, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2021, 2, 8, 22, 30, 0, 0, time.UTC), s.Next(from))
}

func TestScheduler_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := 0
	s, err := NewScheduler("@every 1h", func(context.Context) error {
		runs++
		if runs == 2 {
			return errors.New("provider down")
		}
		if runs == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)

	var waits []time.Duration
	now := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }
	s.After = func(d time.Duration) <-chan time.Time {
		waits = append(waits, d)
		ch := make(chan time.Time, 1)
		ch <- now.Add(d)
		return ch
	}

	err = s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, runs, "a failing run must not stop the loop")
	for _, d := range waits {
		assert.Equal(t, time.Hour, d)
	}
}

func TestScheduler_RunNow(t *testing.T) {
	called := false
	s, err := NewScheduler("@daily", func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, s.RunNow(context.Background()))
	assert.True(t, called)
}
