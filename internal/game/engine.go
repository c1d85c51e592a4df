// Package game drives per-group word guessing sessions:
// Empty -> PendingGeneration -> Active -> Empty.
package game

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/guessbot/internal/adapters"
	"github.com/iamwavecut/guessbot/internal/adapters/llm"
	"github.com/iamwavecut/guessbot/internal/db"
)

const DefaultPrompt = "An illustration of {{ .word }} without any text or letters"

type (
	Store interface {
		GetSession(ctx context.Context, groupID int64) (*db.Session, error)
		UpsertSession(ctx context.Context, session *db.Session) error
		DeleteSession(ctx context.Context, groupID int64) error
		SetPickIntent(ctx context.Context, intent *db.PickIntent) error
		TakePickIntent(ctx context.Context, userID int64) (*db.PickIntent, error)
		ListPendingSessions(ctx context.Context) ([]*db.Session, error)
	}

	Oracle interface {
		IsKnown(word string) bool
		Similarity(ctx context.Context, a, b string) (float64, error)
	}

	// Queue accepts pick requests for the generation worker. TryEnqueue
	// refuses the request when limit requests are already waiting.
	Queue interface {
		TryEnqueue(req PickRequest, limit int) (int, bool)
	}

	// Notifier tells players about generation progress. Activated and
	// GenerationFailed retract the notice returned by GenerationStarted.
	Notifier interface {
		GenerationStarted(ctx context.Context, req PickRequest) (notice int, err error)
		Activated(ctx context.Context, req PickRequest, image llm.Image) (ref string, err error)
		GenerationFailed(ctx context.Context, req PickRequest, cause error) error
		PickAbandoned(ctx context.Context, groupID int64) error
	}

	Options struct {
		MaxQueueSize int
		Delay        time.Duration
		Prompt       string
	}

	Engine struct {
		store     Store
		oracle    Oracle
		generator adapters.Generator
		queue     Queue
		notifier  Notifier
		opts      Options
		locks     *groupLocks
		l         *log.Entry
	}
)

func NewEngine(store Store, oracle Oracle, generator adapters.Generator, queue Queue, notifier Notifier, opts Options) *Engine {
	if opts.MaxQueueSize < 1 {
		opts.MaxQueueSize = 1
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	return &Engine{
		store:     store,
		oracle:    oracle,
		generator: generator,
		queue:     queue,
		notifier:  notifier,
		opts:      opts,
		locks:     newGroupLocks(),
		l:         log.WithField("context", "game"),
	}
}

// activeSession loads the group's session and refuses missing or pending ones.
func (e *Engine) activeSession(ctx context.Context, groupID int64) (*db.Session, error) {
	s, err := e.store.GetSession(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoGame
	}
	if s.IsPending() {
		return nil, ErrStillGenerating
	}
	return s, nil
}

type State int

const (
	StateEmpty State = iota
	StatePendingGeneration
	StateActive
)

func (s State) String() string {
	switch s {
	case StatePendingGeneration:
		return "pending_generation"
	case StateActive:
		return "active"
	default:
		return "empty"
	}
}

// State reports the group's session state.
func (e *Engine) State(ctx context.Context, groupID int64) (State, error) {
	s, err := e.store.GetSession(ctx, groupID)
	switch {
	case err != nil:
		return StateEmpty, err
	case s == nil:
		return StateEmpty, nil
	case s.IsPending():
		return StatePendingGeneration, nil
	default:
		return StateActive, nil
	}
}
