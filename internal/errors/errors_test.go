package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	full := New(ErrCapacity, "queue is full")
	assert.Equal(t, "queue is full", full.Error())
	assert.True(t, errors.Is(full, ErrCapacity))
	assert.Equal(t, ErrCapacity, Kind(full))
	assert.Equal(t, ErrCapacity, Kind(fmt.Errorf("enqueue: %w", full)))

	assert.Equal(t, ErrInternal, Kind(errors.New("disk on fire")))
	assert.Equal(t, ErrPermission, Kind(New(ErrPermission, "not the owner")))
}
