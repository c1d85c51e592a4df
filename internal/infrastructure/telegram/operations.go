package telegram

import (
	"context"
	"fmt"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/iamwavecut/guessbot/internal/bot"
)

type (
	// Operations sends and retracts game messages.
	Operations struct {
		bot      *api.BotAPI
		userName string
	}

	// Photo is sent from the first non-empty source: FileID, URL, Data.
	Photo struct {
		FileID string
		URL    string
		Data   []byte
	}

	// Button is an inline button opening URL.
	Button struct {
		Text string
		URL  string
	}
)

// NewOperations creates a new Operations instance
func NewOperations(bot *api.BotAPI) *Operations {
	return &Operations{bot: bot}
}

// SendText sends a Markdown message, optionally with a single URL button.
func (o *Operations) SendText(ctx context.Context, chatID int64, text string, button *Button) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	msg := api.NewMessage(chatID, text)
	msg.ParseMode = api.ModeMarkdown
	msg.LinkPreviewOptions.IsDisabled = true
	if button != nil {
		msg.ReplyMarkup = api.NewInlineKeyboardMarkup(
			api.NewInlineKeyboardRow(api.NewInlineKeyboardButtonURL(button.Text, button.URL)),
		)
	}
	sent, err := o.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return sent.MessageID, nil
}

// SendPhoto sends a photo with a Markdown caption and returns the message id
// and the Telegram file id of the largest size.
func (o *Operations) SendPhoto(ctx context.Context, chatID int64, photo Photo, caption string) (int, string, error) {
	if err := ctx.Err(); err != nil {
		return 0, "", err
	}
	var file api.RequestFileData
	switch {
	case photo.FileID != "":
		file = api.FileID(photo.FileID)
	case photo.URL != "":
		file = api.FileURL(photo.URL)
	case len(photo.Data) > 0:
		file = api.FileBytes{Name: "illustration.png", Bytes: photo.Data}
	default:
		return 0, "", fmt.Errorf("empty photo")
	}
	msg := api.NewPhoto(chatID, file)
	if caption != "" {
		msg.Caption = caption
		msg.ParseMode = api.ModeMarkdown
	}
	sent, err := o.bot.Send(msg)
	if err != nil {
		return 0, "", fmt.Errorf("failed to send photo: %w", err)
	}
	fileID := photo.FileID
	if n := len(sent.Photo); n > 0 {
		fileID = sent.Photo[n-1].FileID
	}
	return sent.MessageID, fileID, nil
}

// DeleteMessage deletes a message from a chat
func (o *Operations) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := bot.DeleteChatMessage(ctx, o.bot, chatID, messageID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// WithUserName overrides the username used in deep links. An empty name
// keeps the one reported by Telegram.
func (o *Operations) WithUserName(name string) *Operations {
	o.userName = strings.TrimPrefix(strings.TrimSpace(name), "@")
	return o
}

// BotUserName returns the bot's username for deep links.
func (o *Operations) BotUserName() string {
	if o.userName != "" {
		return o.userName
	}
	return o.bot.Self.UserName
}
