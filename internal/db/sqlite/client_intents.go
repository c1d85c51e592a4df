package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iamwavecut/guessbot/internal/db"
)

func (c *sqliteClient) SetPickIntent(ctx context.Context, intent *db.PickIntent) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if intent.CreatedAt.IsZero() {
		intent.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO pick_intents (user_id, group_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			group_id = excluded.group_id,
			created_at = excluded.created_at
	`
	if _, err := c.db.ExecContext(ctx, query, intent.UserID, intent.GroupID, intent.CreatedAt); err != nil {
		return fmt.Errorf("failed to set pick intent for user %d: %w", intent.UserID, err)
	}
	return nil
}

// TakePickIntent returns the user's intent and removes it.
func (c *sqliteClient) TakePickIntent(ctx context.Context, userID int64) (*db.PickIntent, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var intent db.PickIntent
	err = tx.GetContext(ctx, &intent, `SELECT user_id, group_id, created_at FROM pick_intents WHERE user_id = ?`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pick intent for user %d: %w", userID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM pick_intents WHERE user_id = ?`, userID); err != nil {
		return nil, fmt.Errorf("failed to delete pick intent for user %d: %w", userID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &intent, nil
}
