package infra

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchFileFiresOnChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	name := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.WriteFile(name, []byte("v1"), 0o644))

	changed := watchFile(ctx, name, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(name, later, later))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("change was not detected")
	}
}
