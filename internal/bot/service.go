package bot

import (
	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/iamwavecut/guessbot/internal/i18n"
)

type service struct {
	bot             *api.BotAPI
	defaultLanguage string
}

func NewService(bot *api.BotAPI, defaultLanguage string) *service {
	if defaultLanguage == "" {
		defaultLanguage = "en"
	}
	return &service{
		bot:             bot,
		defaultLanguage: defaultLanguage,
	}
}

func (s *service) GetBot() *api.BotAPI {
	return s.bot
}

// GetLanguage returns the user's language when it is supported, the
// configured default otherwise.
func (s *service) GetLanguage(user *api.User) string {
	if user == nil {
		return s.defaultLanguage
	}
	return i18n.Resolve(user.LanguageCode, s.defaultLanguage)
}
