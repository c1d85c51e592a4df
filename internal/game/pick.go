package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iamwavecut/tool"
	"github.com/pborman/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/iamwavecut/guessbot/internal/db"
	"github.com/iamwavecut/guessbot/internal/observability"
)

type (
	// PickRequest is a validated pick waiting for its illustration.
	PickRequest struct {
		ID              string
		SecretWord      string
		GroupID         int64
		RequesterChatID int64
		RequesterName   string
		RequesterID     int64
		Language        string
		EnqueuedAt      time.Time
		Notice          int
	}

	PickInput struct {
		UserID   int64
		ChatID   int64
		Name     string
		Language string
		Text     string
	}

	// PickReceipt reports where a pick landed. GroupID is set whenever the
	// pick intent was found, including on validation errors.
	PickReceipt struct {
		GroupID       int64
		Position      int
		EstimatedWait time.Duration
	}
)

// BeginPick records that userID is about to send the secret word for groupID.
func (e *Engine) BeginPick(ctx context.Context, groupID, userID int64) error {
	unlock := e.locks.Lock(groupID)
	defer unlock()

	s, err := e.store.GetSession(ctx, groupID)
	if err != nil {
		return err
	}
	if s != nil {
		return ErrSessionExists
	}
	return e.store.SetPickIntent(ctx, &db.PickIntent{UserID: userID, GroupID: groupID})
}

// SubmitPick validates the secret word sent privately by the picker, creates
// a pending session and queues its illustration.
func (e *Engine) SubmitPick(ctx context.Context, in PickInput) (PickReceipt, error) {
	intent, err := e.store.TakePickIntent(ctx, in.UserID)
	if err != nil {
		return PickReceipt{}, err
	}
	if intent == nil {
		return PickReceipt{}, ErrNoPickIntent
	}
	receipt := PickReceipt{GroupID: intent.GroupID}

	unlock := e.locks.Lock(intent.GroupID)
	defer unlock()

	existing, err := e.store.GetSession(ctx, intent.GroupID)
	if err != nil {
		return receipt, err
	}
	if existing != nil {
		return receipt, ErrSessionExists
	}
	word, err := singleWord(in.Text)
	if err != nil {
		return receipt, err
	}
	if !e.oracle.IsKnown(word) {
		return receipt, ErrUnknownWord
	}

	session := db.NewSession(intent.GroupID, word)
	if err := e.store.UpsertSession(ctx, session); err != nil {
		return receipt, err
	}

	position, ok := e.queue.TryEnqueue(PickRequest{
		ID:              uuid.New(),
		SecretWord:      word,
		GroupID:         intent.GroupID,
		RequesterChatID: in.ChatID,
		RequesterName:   in.Name,
		RequesterID:     in.UserID,
		Language:        in.Language,
		EnqueuedAt:      time.Now(),
	}, e.opts.MaxQueueSize)
	if !ok {
		if err := e.store.DeleteSession(ctx, intent.GroupID); err != nil {
			e.l.WithError(err).WithField("group_id", intent.GroupID).Error("cant discard pending session")
		}
		observability.RecordTransition("rejected")
		return receipt, ErrQueueFull
	}
	receipt.Position = position
	receipt.EstimatedWait = time.Duration(receipt.Position) * e.opts.Delay
	observability.RecordTransition("pending")
	e.l.WithFields(log.Fields{"group_id": intent.GroupID, "position": receipt.Position}).Info("pick queued")
	return receipt, nil
}

// ProcessPick generates the illustration for req and activates or discards
// its session. It runs on the queue worker.
func (e *Engine) ProcessPick(ctx context.Context, req PickRequest) error {
	ctx, span := observability.Tracer().Start(ctx, "game.ProcessPick")
	defer span.End()
	span.SetAttributes(attribute.String("pick.id", req.ID), attribute.Int64("group.id", req.GroupID))

	l := e.l.WithFields(log.Fields{"pick_id": req.ID, "group_id": req.GroupID})
	notice, err := e.notifier.GenerationStarted(ctx, req)
	if err != nil {
		l.WithError(err).Warn("cant send generation notice")
	}
	req.Notice = notice

	prompt := tool.ExecTemplate(e.opts.Prompt, map[string]any{"word": req.SecretWord})
	finish := observability.StartGeneration()
	image, err := e.generator.Generate(ctx, prompt)
	if err == nil && image.Empty() {
		err = errors.New("empty image")
	}
	if err == nil {
		var ref string
		if ref, err = e.notifier.Activated(ctx, req, image); err == nil {
			if err = e.activate(ctx, req, ref, image.URL); err == nil {
				finish("ok")
				return nil
			}
			err = fmt.Errorf("activate session: %w", err)
		}
	}
	finish("failed")
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	e.discard(ctx, req)
	if nerr := e.notifier.GenerationFailed(ctx, req, err); nerr != nil {
		l.WithError(nerr).Warn("cant notify about generation failure")
	}
	observability.RecordTransition("failed")
	return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
}

// Recover drops the pending sessions left by a previous run: their pick
// requests lived in the old process's queue and will never be processed.
// It must run before the queue worker starts.
func (e *Engine) Recover(ctx context.Context) (int, error) {
	sessions, err := e.store.ListPendingSessions(ctx)
	if err != nil {
		return 0, err
	}
	dropped := 0
	for _, s := range sessions {
		l := e.l.WithField("group_id", s.GroupID)
		if err := e.dropStale(ctx, s.GroupID); err != nil {
			l.WithError(err).Error("cant drop stale pending session")
			continue
		}
		dropped++
		observability.RecordTransition("abandoned")
		if err := e.notifier.PickAbandoned(ctx, s.GroupID); err != nil {
			l.WithError(err).Warn("cant notify about abandoned pick")
		}
	}
	if dropped > 0 {
		e.l.WithField("sessions", dropped).Info("stale pending sessions dropped")
	}
	return dropped, nil
}

func (e *Engine) dropStale(ctx context.Context, groupID int64) error {
	unlock := e.locks.Lock(groupID)
	defer unlock()

	s, err := e.store.GetSession(ctx, groupID)
	if err != nil || s == nil || !s.IsPending() {
		return err
	}
	return e.store.DeleteSession(ctx, groupID)
}

func (e *Engine) activate(ctx context.Context, req PickRequest, ref, url string) error {
	unlock := e.locks.Lock(req.GroupID)
	defer unlock()

	s, err := e.store.GetSession(ctx, req.GroupID)
	if err != nil {
		return err
	}
	if s == nil || !s.IsPending() || s.SecretWord != req.SecretWord {
		e.l.WithField("group_id", req.GroupID).Warn("pending session vanished before activation")
		return nil
	}
	switch {
	case ref != "":
	case url != "":
		ref = url
	default:
		ref = req.ID
	}
	s.IllustrationRef = ref
	s.OwnerID = req.RequesterID
	if err := e.store.UpsertSession(ctx, s); err != nil {
		return err
	}
	observability.RecordTransition("activated")
	e.l.WithField("group_id", req.GroupID).Info("game started")
	return nil
}

func (e *Engine) discard(ctx context.Context, req PickRequest) {
	unlock := e.locks.Lock(req.GroupID)
	defer unlock()

	s, err := e.store.GetSession(ctx, req.GroupID)
	if err != nil {
		e.l.WithError(err).WithField("group_id", req.GroupID).Error("cant load pending session")
		return
	}
	if s == nil || !s.IsPending() || s.SecretWord != req.SecretWord {
		return
	}
	if err := e.store.DeleteSession(ctx, req.GroupID); err != nil {
		e.l.WithError(err).WithField("group_id", req.GroupID).Error("cant discard pending session")
	}
}
