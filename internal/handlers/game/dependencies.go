package handlers

import (
	"context"

	"github.com/iamwavecut/guessbot/internal/game"
	"github.com/iamwavecut/guessbot/internal/infrastructure/telegram"
)

// Transport is the subset of Telegram operations the game talks through.
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string, button *telegram.Button) (int, error)
	SendPhoto(ctx context.Context, chatID int64, photo telegram.Photo, caption string) (int, string, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	BotUserName() string
}

type gameEngine interface {
	State(ctx context.Context, groupID int64) (game.State, error)
	BeginPick(ctx context.Context, groupID, userID int64) error
	SubmitPick(ctx context.Context, in game.PickInput) (game.PickReceipt, error)
	Guess(ctx context.Context, in game.GuessInput) (game.GuessResult, error)
	Top(ctx context.Context, groupID int64, rawCount string) (game.TopResult, error)
	Stop(ctx context.Context, groupID, userID int64) (game.StopResult, error)
}
