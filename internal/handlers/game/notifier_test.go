package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamwavecut/guessbot/internal/adapters/llm"
	"github.com/iamwavecut/guessbot/internal/game"
)

func testRequest() game.PickRequest {
	return game.PickRequest{
		ID:              "pick-1",
		SecretWord:      "lighthouse",
		GroupID:         testGroupID,
		RequesterChatID: testUserID,
		RequesterName:   "Ann_L",
		RequesterID:     testUserID,
		Language:        "en",
	}
}

func TestNotifierGenerationStarted(t *testing.T) {
	tr := &fakeTransport{}
	n := NewNotifier(tr, "en")

	notice, err := n.GenerationStarted(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, notice)
	assert.Equal(t, []string{"The illustration for 'lighthouse' is being generated 😎"}, tr.textsTo(testUserID))
}

func TestNotifierActivated(t *testing.T) {
	tr := &fakeTransport{}
	n := NewNotifier(tr, "en")
	req := testRequest()
	req.Notice = 7

	ref, err := n.Activated(context.Background(), req, llm.Image{Data: []byte{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "file-id", ref)

	require.Len(t, tr.photos, 1)
	assert.Equal(t, testGroupID, tr.photos[0].ChatID)
	assert.Equal(t, []byte{1, 2, 3}, tr.photos[0].Photo.Data)
	assert.Equal(t, "User *Ann\\_L* has picked a word! Send your answers as `/guess answer` in this chat!", tr.photos[0].Caption)
	assert.Equal(t, []int{7}, tr.deleted)
	assert.Equal(t, []string{"Your word 'lighthouse' has been picked successfully! ✅ Go back to the group."}, tr.textsTo(testUserID))
}

func TestNotifierActivatedSendFailure(t *testing.T) {
	tr := &fakeTransport{photoErr: errors.New("bad request")}
	n := NewNotifier(tr, "en")

	_, err := n.Activated(context.Background(), testRequest(), llm.Image{URL: "https://cdn.example.com/a.png"})
	require.Error(t, err)
	assert.Empty(t, tr.texts)
}

func TestNotifierGenerationFailed(t *testing.T) {
	tr := &fakeTransport{}
	n := NewNotifier(tr, "en")
	req := testRequest()
	req.Notice = 3

	require.NoError(t, n.GenerationFailed(context.Background(), req, errors.New("content_policy_violation: `nope`")))
	assert.Equal(t, []int{3}, tr.deleted)
	assert.Equal(t, []string{"❌ Generation error: `content_policy_violation: 'nope'`"}, tr.textsTo(testUserID))
	assert.Equal(t, []string{"❌ Generation error. Start the game again: `content_policy_violation: 'nope'`"}, tr.textsTo(testGroupID))
}

func TestNotifierPickAbandoned(t *testing.T) {
	tr := &fakeTransport{}
	n := NewNotifier(tr, "ru")

	require.NoError(t, n.PickAbandoned(context.Background(), testGroupID))
	assert.Equal(t, []string{"❌ Бот был перезапущен до того, как картинка была готова. Начните игру заново командой /play"}, tr.textsTo(testGroupID))
	assert.Empty(t, tr.textsTo(testUserID))
}
