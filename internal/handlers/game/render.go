package handlers

import (
	"fmt"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/iamwavecut/guessbot/internal/db"
	"github.com/iamwavecut/guessbot/internal/game"
	"github.com/iamwavecut/guessbot/internal/i18n"
	"github.com/iamwavecut/guessbot/internal/infrastructure/telegram"
)

func renderTop(entries []db.LedgerEntry) string {
	var sb strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&sb, "%d) *%s*: %s\n", i+1, entry.Word, entry.Percent)
	}
	return sb.String()
}

func renderScoreboard(rows []game.PlayerScore) string {
	var sb strings.Builder
	for _, line := range game.FormatScoreboard(rows) {
		sb.WriteString("`" + codeSafe(line) + "`\n")
	}
	return sb.String()
}

// renderSummary returns the closing word and player statistics messages,
// skipping the ones that would be empty.
func renderSummary(top []db.LedgerEntry, board []game.PlayerScore, lang string) []string {
	var messages []string
	if len(top) > 0 {
		messages = append(messages, i18n.Get("Word statistics:", lang)+"\n\n"+renderTop(top))
	}
	if len(board) > 0 {
		messages = append(messages, i18n.Get("Player statistics (number of guesses, average similarity):", lang)+"\n\n"+renderScoreboard(board))
	}
	return messages
}

func escapeName(name string) string {
	return api.EscapeText(api.ModeMarkdown, name)
}

// codeSafe keeps text intact inside a Markdown code span.
func codeSafe(text string) string {
	return strings.ReplaceAll(text, "`", "'")
}

func photoFromRef(ref string) telegram.Photo {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return telegram.Photo{URL: ref}
	}
	return telegram.Photo{FileID: ref}
}
