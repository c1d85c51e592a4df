package handlers

import (
	"context"
	"strings"
	"sync"

	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/iamwavecut/guessbot/internal/game"
	"github.com/iamwavecut/guessbot/internal/infrastructure/telegram"
)

const (
	testGroupID int64 = -1001234
	testUserID  int64 = 42
	testBotName       = "guess_bot"
)

type sentText struct {
	ChatID int64
	Text   string
	Button *telegram.Button
}

type sentPhoto struct {
	ChatID  int64
	Photo   telegram.Photo
	Caption string
}

type fakeTransport struct {
	mu       sync.Mutex
	texts    []sentText
	photos   []sentPhoto
	deleted  []int
	photoErr error
	nextID   int
}

func (f *fakeTransport) SendText(_ context.Context, chatID int64, text string, button *telegram.Button) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.texts = append(f.texts, sentText{ChatID: chatID, Text: text, Button: button})
	return f.nextID, nil
}

func (f *fakeTransport) SendPhoto(_ context.Context, chatID int64, photo telegram.Photo, caption string) (int, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.photoErr != nil {
		return 0, "", f.photoErr
	}
	f.nextID++
	f.photos = append(f.photos, sentPhoto{ChatID: chatID, Photo: photo, Caption: caption})
	return f.nextID, "file-id", nil
}

func (f *fakeTransport) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeTransport) BotUserName() string {
	return testBotName
}

func (f *fakeTransport) textsTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var texts []string
	for _, sent := range f.texts {
		if sent.ChatID == chatID {
			texts = append(texts, sent.Text)
		}
	}
	return texts
}

func (f *fakeTransport) last() sentText {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.texts) == 0 {
		return sentText{}
	}
	return f.texts[len(f.texts)-1]
}

type fakeEngine struct {
	state     game.State
	beginErr  error
	began     [][2]int64
	pick      game.PickReceipt
	pickErr   error
	picked    []game.PickInput
	guess     game.GuessResult
	guessErr  error
	guessed   []game.GuessInput
	top       game.TopResult
	topErr    error
	topCount  string
	stop      game.StopResult
	stopErr   error
	panicWith string
}

func (f *fakeEngine) State(context.Context, int64) (game.State, error) {
	if f.panicWith != "" {
		panic(f.panicWith)
	}
	return f.state, nil
}

func (f *fakeEngine) BeginPick(_ context.Context, groupID, userID int64) error {
	f.began = append(f.began, [2]int64{groupID, userID})
	return f.beginErr
}

func (f *fakeEngine) SubmitPick(_ context.Context, in game.PickInput) (game.PickReceipt, error) {
	f.picked = append(f.picked, in)
	return f.pick, f.pickErr
}

func (f *fakeEngine) Guess(_ context.Context, in game.GuessInput) (game.GuessResult, error) {
	f.guessed = append(f.guessed, in)
	return f.guess, f.guessErr
}

func (f *fakeEngine) Top(_ context.Context, _ int64, rawCount string) (game.TopResult, error) {
	f.topCount = rawCount
	return f.top, f.topErr
}

func (f *fakeEngine) Stop(context.Context, int64, int64) (game.StopResult, error) {
	return f.stop, f.stopErr
}

type fakeService struct{}

func (fakeService) GetBot() *api.BotAPI { return nil }

func (fakeService) GetLanguage(user *api.User) string {
	if user != nil && user.LanguageCode == "ru" {
		return "ru"
	}
	return "en"
}

func testUser() *api.User {
	return &api.User{ID: testUserID, FirstName: "Ann", LastName: "Lee_Smith", LanguageCode: "en"}
}

func chatOf(chatID int64) *api.Chat {
	if chatID > 0 {
		return &api.Chat{ID: chatID, Type: "private"}
	}
	return &api.Chat{ID: chatID, Type: "supergroup"}
}

// commandUpdate builds an update whose text starts with a bot command.
func commandUpdate(chatID int64, text string) *api.Update {
	name := strings.Fields(text)[0]
	return &api.Update{Message: &api.Message{
		Text:     text,
		From:     testUser(),
		Chat:     *chatOf(chatID),
		Entities: []api.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}}
}

func textUpdate(chatID int64, text string) *api.Update {
	return &api.Update{Message: &api.Message{
		Text: text,
		From: testUser(),
		Chat: *chatOf(chatID),
	}}
}
