package db

import "context"

// Client persists game sessions keyed by group id and pending pick intents
// keyed by user id. Getters return nil without error for absent records.
type Client interface {
	Close() error
	GetSession(ctx context.Context, groupID int64) (*Session, error)
	UpsertSession(ctx context.Context, session *Session) error
	DeleteSession(ctx context.Context, groupID int64) error
	ListPendingSessions(ctx context.Context) ([]*Session, error)
	SetPickIntent(ctx context.Context, intent *PickIntent) error
	TakePickIntent(ctx context.Context, userID int64) (*PickIntent, error)
}
