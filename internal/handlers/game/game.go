package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/iamwavecut/tool"
	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/guessbot/internal/bot"
	errs "github.com/iamwavecut/guessbot/internal/errors"
	"github.com/iamwavecut/guessbot/internal/game"
	"github.com/iamwavecut/guessbot/internal/i18n"
	"github.com/iamwavecut/guessbot/internal/infra"
	"github.com/iamwavecut/guessbot/internal/infrastructure/telegram"
)

const (
	commandStart = "start"
	commandHelp  = "help"
	commandPlay  = "play"
	commandGuess = "guess"
	commandTop   = "top"
	commandStop  = "stop"
)

// Game routes chat commands to the game engine and renders its answers.
type Game struct {
	s      bot.Service
	engine gameEngine
	t      Transport
}

func NewGame(s bot.Service, engine gameEngine, t Transport) *Game {
	log.WithField("object", "Game").WithField("method", "NewGame").Debug("created new game handler")
	return &Game{s: s, engine: engine, t: t}
}

func (g *Game) Handle(ctx context.Context, u *api.Update, chat *api.Chat, user *api.User) (proceed bool, err error) {
	if u == nil || u.Message == nil || chat == nil || user == nil {
		return true, nil
	}
	msg := u.Message
	lang := g.s.GetLanguage(user)
	entry := g.getLogEntry().WithFields(log.Fields{"chat_id": chat.ID, "user_id": user.ID})

	var handle func() error
	switch {
	case msg.IsCommand():
		entry.Debugf("processing command: %s", msg.Command())
		switch msg.Command() {
		case commandStart, commandHelp:
			handle = func() error { return g.handleStart(ctx, msg, chat, user, lang) }
		case commandPlay:
			handle = func() error { return g.handlePlay(ctx, chat, lang) }
		case commandGuess:
			handle = func() error { return g.handleGuess(ctx, msg, chat, user, lang) }
		case commandTop:
			handle = func() error { return g.handleTop(ctx, msg, chat, user, lang) }
		case commandStop:
			handle = func() error { return g.handleStop(ctx, chat, user, lang) }
		default:
			return true, nil
		}
	case chat.IsPrivate() && bot.GetMessageType(msg) == bot.MessageTypeText:
		handle = func() error { return g.handlePickWord(ctx, msg, chat, user, lang) }
	default:
		return true, nil
	}

	if err := infra.CatchPanic(handle); err != nil {
		entry.WithError(err).WithField("kind", errs.Kind(err).Error()).Error("game command failed")
		g.reply(ctx, chat.ID, fmt.Sprintf(
			i18n.Get("⛔ An error occurred, please report it to the bot administrator\n\nError:\n\n`%s`", lang),
			codeSafe(err.Error()),
		), nil)
	}
	return false, nil
}

func (g *Game) handleStart(ctx context.Context, msg *api.Message, chat *api.Chat, user *api.User, lang string) error {
	payload := strings.TrimSpace(msg.CommandArguments())
	if payload == "" || msg.Command() == commandHelp {
		g.welcome(ctx, chat.ID, lang)
		return nil
	}
	if !chat.IsPrivate() {
		g.reply(ctx, chat.ID, i18n.Get("❌ A command with a parameter can only be used in private messages!", lang), nil)
		return nil
	}
	groupID, ok := parsePickPayload(payload)
	if !ok {
		g.getLogEntry().WithField("payload", payload).Debug("unknown start payload")
		g.welcome(ctx, chat.ID, lang)
		return nil
	}

	err := g.engine.BeginPick(ctx, groupID, user.ID)
	switch {
	case errors.Is(err, game.ErrSessionExists):
		g.reply(ctx, chat.ID, i18n.Get("❌ A game is already running!", lang), nil)
	case err != nil:
		return err
	default:
		g.reply(ctx, chat.ID, i18n.Get("Send me the word you want to pick! 😨", lang), nil)
	}
	return nil
}

func (g *Game) welcome(ctx context.Context, chatID int64, lang string) {
	g.reply(ctx, chatID, i18n.Get("👋 Hi! I am a bot for picking secret words for your friends to guess. I show them an illustration and tell them how close they are to the right word. To pick a word, send /play in a group. (The game is played in English)", lang), nil)
}

func (g *Game) handlePlay(ctx context.Context, chat *api.Chat, lang string) error {
	if chat.IsPrivate() {
		g.reply(ctx, chat.ID, i18n.Get("❌ This command can only be used in a group chat!", lang), nil)
		return nil
	}
	state, err := g.engine.State(ctx, chat.ID)
	if err != nil {
		return err
	}
	if state != game.StateEmpty {
		g.reply(ctx, chat.ID, i18n.Get("❌ A game is already running!", lang), nil)
		return nil
	}
	g.reply(ctx, chat.ID, i18n.Get("To pick a word, press the button below! 😁", lang), &telegram.Button{
		Text: i18n.Get("Pick!", lang),
		URL:  pickLink(g.t.BotUserName(), chat.ID),
	})
	return nil
}

func (g *Game) handlePickWord(ctx context.Context, msg *api.Message, chat *api.Chat, user *api.User, lang string) error {
	receipt, err := g.engine.SubmitPick(ctx, game.PickInput{
		UserID:   user.ID,
		ChatID:   chat.ID,
		Name:     bot.GetFullName(user),
		Language: lang,
		Text:     msg.Text,
	})
	retry := func(text string) {
		g.reply(ctx, chat.ID, text, &telegram.Button{
			Text: i18n.Get("Pick again!", lang),
			URL:  pickLink(g.t.BotUserName(), receipt.GroupID),
		})
	}
	switch {
	case err == nil:
		g.reply(ctx, chat.ID, fmt.Sprintf(
			i18n.Get("You have been added to the queue.\nApproximate waiting time %d min", lang),
			int(receipt.EstimatedWait.Minutes()),
		), nil)
	case errors.Is(err, game.ErrNoPickIntent):
		g.reply(ctx, chat.ID, i18n.Get("❌ Press the button in the group chat first!", lang), nil)
	case errors.Is(err, game.ErrSessionExists):
		g.reply(ctx, chat.ID, i18n.Get("❌ A game is already running!", lang), nil)
	case errors.Is(err, game.ErrMultipleTokens):
		retry(i18n.Get("❌ Send me a word, not a sentence!", lang))
	case errors.Is(err, game.ErrNotLetters):
		retry(i18n.Get("❌ The word must be English and consist of letters only!", lang))
	case errors.Is(err, game.ErrUnknownWord):
		retry(i18n.Get("❌ This word does not exist!", lang))
	case errors.Is(err, game.ErrQueueFull):
		text := i18n.Get("Sorry, the queue is full. This game is cancelled.", lang)
		g.reply(ctx, chat.ID, text, nil)
		g.reply(ctx, receipt.GroupID, text, nil)
	default:
		return err
	}
	return nil
}

func (g *Game) handleGuess(ctx context.Context, msg *api.Message, chat *api.Chat, user *api.User, lang string) error {
	if chat.IsPrivate() {
		g.reply(ctx, chat.ID, i18n.Get("❌ This command can only be used in a group chat!", lang), nil)
		return nil
	}
	name := bot.GetFullName(user)
	result, err := g.engine.Guess(ctx, game.GuessInput{
		GroupID:    chat.ID,
		PlayerID:   user.ID,
		PlayerName: name,
		Text:       msg.CommandArguments(),
	})
	mention := escapeName(name)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrNoGame):
		g.reply(ctx, chat.ID, i18n.Get("❌ No game is running right now!", lang), nil)
		return nil
	case errors.Is(err, game.ErrStillGenerating):
		g.reply(ctx, chat.ID, i18n.Get("⏳ The illustration is still being generated, please wait!", lang), nil)
		return nil
	case errors.Is(err, game.ErrMultipleTokens):
		g.reply(ctx, chat.ID, fmt.Sprintf(i18n.Get("❌ *%s*, the answer must be a single word!", lang), mention), nil)
		return nil
	case errors.Is(err, game.ErrNotLetters):
		g.reply(ctx, chat.ID, fmt.Sprintf(i18n.Get("❌ *%s*, the answer must be English and consist of letters only!", lang), mention), nil)
		return nil
	case errors.Is(err, game.ErrUnknownWord):
		g.reply(ctx, chat.ID, fmt.Sprintf(i18n.Get("❌ *%s*, this word does not exist!", lang), mention), nil)
		return nil
	default:
		return err
	}

	if !result.Solved {
		g.reply(ctx, chat.ID, fmt.Sprintf(
			i18n.Get("The answer of *%s* is *%s* close to the right one", lang),
			mention, result.Percent,
		), nil)
		return nil
	}

	for _, text := range renderSummary(result.Top, result.Scoreboard, lang) {
		g.reply(ctx, chat.ID, text, nil)
	}
	if result.FirstTry {
		g.reply(ctx, chat.ID, fmt.Sprintf(
			i18n.Get("🎉 *%s* well done! You guessed the word *%s* on the first try! What mastery! 🤯", lang),
			mention, result.SecretWord,
		), nil)
		return nil
	}
	g.reply(ctx, chat.ID, fmt.Sprintf(
		i18n.Get("🎉 *%s* guessed the word *%s*! The game is over.", lang),
		mention, result.SecretWord,
	), nil)
	return nil
}

func (g *Game) handleTop(ctx context.Context, msg *api.Message, chat *api.Chat, user *api.User, lang string) error {
	if chat.IsPrivate() {
		g.reply(ctx, chat.ID, i18n.Get("❌ This command can only be used in a group chat!", lang), nil)
		return nil
	}
	result, err := g.engine.Top(ctx, chat.ID, msg.CommandArguments())
	mention := escapeName(bot.GetFullName(user))
	switch {
	case err == nil:
	case errors.Is(err, game.ErrNoGame):
		g.reply(ctx, chat.ID, fmt.Sprintf(i18n.Get("❌ *%s*, no game is running at the moment", lang), mention), nil)
		return nil
	case errors.Is(err, game.ErrStillGenerating):
		g.reply(ctx, chat.ID, i18n.Get("⏳ The illustration is still being generated, please wait!", lang), nil)
		return nil
	case errors.Is(err, game.ErrNoGuesses):
		g.reply(ctx, chat.ID, fmt.Sprintf(i18n.Get("❌ *%s*, there are no guesses yet!", lang), mention), nil)
		return nil
	case errors.Is(err, game.ErrCountNotNumber):
		g.reply(ctx, chat.ID, fmt.Sprintf(i18n.Get("❌ *%s*, the parameter must be a number (from 1 to 100)!", lang), mention), nil)
		return nil
	case errors.Is(err, game.ErrInvalidCount):
		g.reply(ctx, chat.ID, fmt.Sprintf(i18n.Get("❌ *%s*, specify the number of words to show from 1 to 100.", lang), mention), nil)
		return nil
	default:
		return err
	}

	g.reply(ctx, chat.ID, renderTop(result.Entries), nil)
	if _, _, err := g.t.SendPhoto(ctx, chat.ID, photoFromRef(result.IllustrationRef), ""); err != nil {
		g.getLogEntry().WithError(err).Warn("cant resend illustration")
	}
	return nil
}

func (g *Game) handleStop(ctx context.Context, chat *api.Chat, user *api.User, lang string) error {
	if chat.IsPrivate() {
		g.reply(ctx, chat.ID, i18n.Get("❌ This command can only be used in a group chat!", lang), nil)
		return nil
	}
	result, err := g.engine.Stop(ctx, chat.ID, user.ID)
	mention := escapeName(bot.GetFullName(user))
	switch {
	case err == nil:
	case errors.Is(err, game.ErrNoGame):
		g.reply(ctx, chat.ID, i18n.Get("❌ No game is running right now!", lang), nil)
		return nil
	case errors.Is(err, game.ErrStillGenerating):
		g.reply(ctx, chat.ID, i18n.Get("❌ The game cannot be stopped while the illustration is being generated!", lang), nil)
		return nil
	case errors.Is(err, game.ErrNotOwner):
		g.reply(ctx, chat.ID, fmt.Sprintf(i18n.Get("❌ *%s*, only the player who picked the word can stop the game!", lang), mention), nil)
		return nil
	default:
		return err
	}

	for _, text := range renderSummary(result.Top, result.Scoreboard, lang) {
		g.reply(ctx, chat.ID, text, nil)
	}
	g.reply(ctx, chat.ID, fmt.Sprintf(
		i18n.Get("🛑 *%s* stopped the game. The word was *%s*.", lang),
		mention, result.SecretWord,
	), nil)
	return nil
}

func (g *Game) reply(ctx context.Context, chatID int64, text string, button *telegram.Button) {
	if err := tool.Err(g.t.SendText(ctx, chatID, text, button)); err != nil {
		g.getLogEntry().WithError(err).WithField("chat_id", chatID).Warn("cant send reply")
	}
}

func (g *Game) getLogEntry() *log.Entry {
	return log.WithField("object", "Game")
}
