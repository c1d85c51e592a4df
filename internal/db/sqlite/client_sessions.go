package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iamwavecut/guessbot/internal/db"
)

func (c *sqliteClient) GetSession(ctx context.Context, groupID int64) (*db.Session, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var session db.Session
	err := c.db.GetContext(ctx, &session, `
		SELECT group_id, secret_word, ledger, scores, names, illustration_ref, owner_id, created_at, updated_at
		FROM sessions
		WHERE group_id = ?
	`, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session for group %d: %w", groupID, err)
	}
	return &session, nil
}

func (c *sqliteClient) UpsertSession(ctx context.Context, session *db.Session) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	query := `
		INSERT INTO sessions (
			group_id, secret_word, ledger, scores, names, illustration_ref, owner_id, created_at, updated_at
		) VALUES (
			:group_id, :secret_word, :ledger, :scores, :names, :illustration_ref, :owner_id, :created_at, :updated_at
		)
		ON CONFLICT(group_id) DO UPDATE SET
			secret_word = excluded.secret_word,
			ledger = excluded.ledger,
			scores = excluded.scores,
			names = excluded.names,
			illustration_ref = excluded.illustration_ref,
			owner_id = excluded.owner_id,
			updated_at = excluded.updated_at
	`
	if _, err := c.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("failed to upsert session for group %d: %w", session.GroupID, err)
	}
	return nil
}

func (c *sqliteClient) DeleteSession(ctx context.Context, groupID int64) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, err := c.db.ExecContext(ctx, `DELETE FROM sessions WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("failed to delete session for group %d: %w", groupID, err)
	}
	return nil
}

// ListPendingSessions returns the sessions still waiting for an illustration,
// ordered by group id.
func (c *sqliteClient) ListPendingSessions(ctx context.Context) ([]*db.Session, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var sessions []*db.Session
	err := c.db.SelectContext(ctx, &sessions, `
		SELECT group_id, secret_word, ledger, scores, names, illustration_ref, owner_id, created_at, updated_at
		FROM sessions
		WHERE illustration_ref = ''
		ORDER BY group_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending sessions: %w", err)
	}
	return sessions, nil
}
