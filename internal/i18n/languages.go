package i18n

import (
	"strings"

	"github.com/iamwavecut/tool"
)

var languageNames = map[string]string{
	"en": "English",
	"ru": "Russian",
}

func GetLanguageName(code string) string {
	normalized := strings.ToLower(code)
	if name, ok := languageNames[normalized]; ok {
		return name
	}
	return code
}

// Resolve picks the user's language when it is supported, fallback otherwise.
func Resolve(userLanguage, fallback string) string {
	normalized := strings.ToLower(userLanguage)
	if tool.In(normalized, GetLanguagesList()...) {
		return normalized
	}
	return fallback
}

func GetLanguagesList() []string {
	codes := make([]string, 0, len(languageNames))
	for code := range languageNames {
		codes = append(codes, code)
	}
	return codes
}
