package handlers

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	pickPayloadPrefix = "pick"
	chatIDEncodedLen  = 11
	negativeMarker    = "_"
	legacyNegative    = "~"
)

// encodeChatID packs a chat id into the deep-link safe charset [A-Za-z0-9_-].
func encodeChatID(chatID int64) string {
	negative := chatID < 0
	if negative {
		chatID = -chatID
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(chatID))
	encoded := base64.RawURLEncoding.EncodeToString(buf)
	if negative {
		return negativeMarker + encoded
	}
	return encoded
}

func decodeChatID(value string) (int64, error) {
	negative := false
	switch {
	case strings.HasPrefix(value, legacyNegative):
		negative = true
		value = strings.TrimPrefix(value, legacyNegative)
	case len(value) == chatIDEncodedLen+len(negativeMarker) && strings.HasPrefix(value, negativeMarker):
		negative = true
		value = value[len(negativeMarker):]
	}
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return 0, fmt.Errorf("invalid chat id: %w", err)
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("invalid chat id length")
	}
	id := int64(binary.BigEndian.Uint64(data))
	if negative {
		return -id, nil
	}
	return id, nil
}

func pickPayload(groupID int64) string {
	return pickPayloadPrefix + encodeChatID(groupID)
}

func parsePickPayload(payload string) (int64, bool) {
	if !strings.HasPrefix(payload, pickPayloadPrefix) {
		return 0, false
	}
	groupID, err := decodeChatID(strings.TrimPrefix(payload, pickPayloadPrefix))
	if err != nil {
		return 0, false
	}
	return groupID, true
}

func pickLink(botName string, groupID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", botName, pickPayload(groupID))
}
