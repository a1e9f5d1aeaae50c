package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	_, err := New(Config{Timezone: "Mars/Olympus"}, nil)
	assert.Error(t, err)

	s, err := New(Config{Timezone: "Europe/Berlin", TimeoutMinutes: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, s.timeout)
}

func TestAdd(t *testing.T) {
	s, err := New(Config{}, nil)
	require.NoError(t, err)

	assert.Error(t, s.Add("not a spec", "update", func(context.Context) error { return nil }))
	require.NoError(t, s.Add("0 3 * * *", "update", func(context.Context) error { return nil }))
	assert.Len(t, s.Next(), 1)
}

func TestRun_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s, err := New(Config{TimeoutMinutes: 1}, zap.New(core))
	require.NoError(t, err)

	var deadline bool
	s.run("ok", func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		return nil
	})
	s.run("broken", func(context.Context) error { return errors.New("boom") })

	assert.True(t, deadline)
	assert.Equal(t, 1, logs.FilterMessage("Job finished").Len())
	failed := logs.FilterMessage("Job failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "broken", failed[0].ContextMap()["job"])
}

func TestStartStop(t *testing.T) {
	s, err := New(Config{}, nil)
	require.NoError(t, err)

	fired := make(chan struct{}, 1)
	require.NoError(t, s.Add("@every 1s", "tick", func(context.Context) error {
		select {
		case fired <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start()
	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not fire")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
