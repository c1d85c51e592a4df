// Package memory is a process-local db.Client used when no database is
// configured and in tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/iamwavecut/guessbot/internal/db"
)

type memoryClient struct {
	mutex    sync.RWMutex
	sessions map[int64]*db.Session
	intents  map[int64]db.PickIntent
}

func NewMemoryClient() *memoryClient {
	return &memoryClient{
		sessions: make(map[int64]*db.Session),
		intents:  make(map[int64]db.PickIntent),
	}
}

func (c *memoryClient) Close() error {
	return nil
}

func (c *memoryClient) GetSession(_ context.Context, groupID int64) (*db.Session, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.sessions[groupID].Clone(), nil
}

func (c *memoryClient) UpsertSession(_ context.Context, session *db.Session) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	c.sessions[session.GroupID] = session.Clone()
	return nil
}

func (c *memoryClient) DeleteSession(_ context.Context, groupID int64) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.sessions, groupID)
	return nil
}

func (c *memoryClient) ListPendingSessions(_ context.Context) ([]*db.Session, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var sessions []*db.Session
	for _, s := range c.sessions {
		if s.IsPending() {
			sessions = append(sessions, s.Clone())
		}
	}
	slices.SortFunc(sessions, func(a, b *db.Session) int {
		return cmp.Compare(a.GroupID, b.GroupID)
	})
	return sessions, nil
}

func (c *memoryClient) SetPickIntent(_ context.Context, intent *db.PickIntent) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if intent.CreatedAt.IsZero() {
		intent.CreatedAt = time.Now()
	}
	c.intents[intent.UserID] = *intent
	return nil
}

func (c *memoryClient) TakePickIntent(_ context.Context, userID int64) (*db.PickIntent, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	intent, ok := c.intents[userID]
	if !ok {
		return nil, nil
	}
	delete(c.intents, userID)
	return &intent, nil
}
