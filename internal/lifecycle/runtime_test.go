package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name     string
	journal  *[]string
	startErr error
	stopErr  error
}

func (r *recorder) Start(context.Context) error {
	*r.journal = append(*r.journal, "start "+r.name)
	return r.startErr
}

func (r *recorder) Stop(context.Context) error {
	*r.journal = append(*r.journal, "stop "+r.name)
	return r.stopErr
}

func TestRuntimeOrder(t *testing.T) {
	var journal []string
	rt := NewRuntime(time.Second)
	rt.Register("store", &recorder{name: "store", journal: &journal})
	rt.Register("worker", &recorder{name: "worker", journal: &journal})
	rt.Register("nil", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, rt.Run(ctx))
	assert.Equal(t, []string{"start store", "start worker", "stop worker", "stop store"}, journal)
}

func TestRuntimeStartFailureStopsStarted(t *testing.T) {
	var journal []string
	rt := NewRuntime(time.Second)
	rt.Register("store", &recorder{name: "store", journal: &journal})
	rt.Register("worker", &recorder{name: "worker", journal: &journal, startErr: errors.New("nope")})

	err := rt.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start worker")
	assert.Equal(t, []string{"start store", "start worker", "stop store"}, journal)
}

func TestRuntimeStopJoinsErrors(t *testing.T) {
	var journal []string
	rt := NewRuntime(time.Second)
	rt.Register("a", &recorder{name: "a", journal: &journal, stopErr: errors.New("a broke")})
	rt.Register("b", &recorder{name: "b", journal: &journal, stopErr: errors.New("b broke")})

	err := rt.Stop(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a broke")
	assert.Contains(t, err.Error(), "b broke")
}
