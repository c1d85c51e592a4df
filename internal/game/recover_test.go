package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamwavecut/guessbot/internal/db/sqlite"
)

func TestRestartReleasesGroupStuckInPending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	oracle := newFakeOracle(map[string]float64{"lamp": 1})

	store, err := sqlite.NewSQLiteClient(ctx, dir, "guessbot.db")
	require.NoError(t, err)
	before := NewEngine(store, oracle, &fakeGenerator{}, &fakeQueue{}, &fakeNotifier{}, Options{MaxQueueSize: 10})
	require.NoError(t, before.BeginPick(ctx, groupID, 42))
	_, err = before.SubmitPick(ctx, PickInput{UserID: 42, ChatID: 42, Text: "lamp"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = sqlite.NewSQLiteClient(ctx, dir, "guessbot.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	notifier := &fakeNotifier{}
	after := NewEngine(store, oracle, &fakeGenerator{}, &fakeQueue{}, notifier, Options{MaxQueueSize: 10})
	state, err := after.State(ctx, groupID)
	require.NoError(t, err)
	require.Equal(t, StatePendingGeneration, state)

	dropped, err := after.Recover(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, []int64{groupID}, notifier.abandoned)

	state, err = after.State(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, state)
	assert.NoError(t, after.BeginPick(ctx, groupID, 42))
}
