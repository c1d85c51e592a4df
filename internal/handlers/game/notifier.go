package handlers

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/guessbot/internal/adapters/llm"
	"github.com/iamwavecut/guessbot/internal/game"
	"github.com/iamwavecut/guessbot/internal/i18n"
	"github.com/iamwavecut/guessbot/internal/infrastructure/telegram"
)

// Notifier tells the picker and the group how their illustration is doing.
// Group-wide notices without a picker use language.
type Notifier struct {
	t        Transport
	language string
}

func NewNotifier(t Transport, language string) *Notifier {
	return &Notifier{t: t, language: language}
}

func (n *Notifier) GenerationStarted(ctx context.Context, req game.PickRequest) (int, error) {
	return n.t.SendText(ctx, req.RequesterChatID, fmt.Sprintf(
		i18n.Get("The illustration for '%s' is being generated 😎", req.Language),
		req.SecretWord,
	), nil)
}

// Activated posts the illustration to the group and returns its file id.
func (n *Notifier) Activated(ctx context.Context, req game.PickRequest, image llm.Image) (string, error) {
	caption := fmt.Sprintf(
		i18n.Get("User *%s* has picked a word! Send your answers as `/guess answer` in this chat!", req.Language),
		escapeName(req.RequesterName),
	)
	_, fileID, err := n.t.SendPhoto(ctx, req.GroupID, telegram.Photo{URL: image.URL, Data: image.Data}, caption)
	if err != nil {
		return "", err
	}
	n.retractNotice(ctx, req)
	if _, err := n.t.SendText(ctx, req.RequesterChatID, fmt.Sprintf(
		i18n.Get("Your word '%s' has been picked successfully! ✅ Go back to the group.", req.Language),
		req.SecretWord,
	), nil); err != nil {
		n.getLogEntry().WithError(err).Warn("cant confirm pick")
	}
	return fileID, nil
}

func (n *Notifier) GenerationFailed(ctx context.Context, req game.PickRequest, cause error) error {
	n.retractNotice(ctx, req)
	reason := codeSafe(cause.Error())
	_, privErr := n.t.SendText(ctx, req.RequesterChatID, fmt.Sprintf(
		i18n.Get("❌ Generation error: `%s`", req.Language), reason,
	), nil)
	_, groupErr := n.t.SendText(ctx, req.GroupID, fmt.Sprintf(
		i18n.Get("❌ Generation error. Start the game again: `%s`", req.Language), reason,
	), nil)
	return errors.Join(privErr, groupErr)
}

// PickAbandoned tells the group its pending pick was lost with the previous run.
func (n *Notifier) PickAbandoned(ctx context.Context, groupID int64) error {
	_, err := n.t.SendText(ctx, groupID,
		i18n.Get("❌ The bot was restarted before the illustration was ready. Start the game again with /play", n.language), nil)
	return err
}

func (n *Notifier) retractNotice(ctx context.Context, req game.PickRequest) {
	if req.Notice == 0 {
		return
	}
	if err := n.t.DeleteMessage(ctx, req.RequesterChatID, req.Notice); err != nil {
		n.getLogEntry().WithError(err).Debug("cant delete generation notice")
	}
}

func (n *Notifier) getLogEntry() *log.Entry {
	return log.WithField("object", "Notifier")
}
