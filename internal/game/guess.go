package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/iamwavecut/guessbot/internal/db"
	"github.com/iamwavecut/guessbot/internal/observability"
)

type (
	GuessInput struct {
		GroupID    int64
		PlayerID   int64
		PlayerName string
		Text       string
	}

	// GuessResult describes an accepted guess. Solved results carry the
	// final summaries computed before the session was removed.
	GuessResult struct {
		Word       string
		Percent    db.Percent
		Solved     bool
		FirstTry   bool
		SecretWord string
		Top        []db.LedgerEntry
		Scoreboard []PlayerScore
	}

	TopResult struct {
		Entries         []db.LedgerEntry
		IllustrationRef string
	}

	StopResult struct {
		SecretWord string
		Top        []db.LedgerEntry
		Scoreboard []PlayerScore
	}
)

// Guess adjudicates a guess against the group's active session.
func (e *Engine) Guess(ctx context.Context, in GuessInput) (GuessResult, error) {
	ctx, span := observability.Tracer().Start(ctx, "game.Guess")
	defer span.End()
	span.SetAttributes(attribute.Int64("group.id", in.GroupID))

	s, err := e.activeSession(ctx, in.GroupID)
	if err != nil {
		return GuessResult{}, err
	}
	word, err := singleWord(in.Text)
	if err != nil {
		observability.RecordGuess("invalid")
		return GuessResult{}, err
	}
	if word == s.SecretWord {
		return e.solve(ctx, in, s.SecretWord)
	}
	if !e.oracle.IsKnown(word) {
		observability.RecordGuess("unknown")
		return GuessResult{}, ErrUnknownWord
	}

	similarity, err := e.oracle.Similarity(ctx, s.SecretWord, word)
	if err != nil {
		span.RecordError(err)
		return GuessResult{}, err
	}
	percent := ToPercent(similarity)

	unlock := e.locks.Lock(in.GroupID)
	defer unlock()

	current, err := e.activeSession(ctx, in.GroupID)
	if err != nil {
		return GuessResult{}, err
	}
	if current.SecretWord != s.SecretWord {
		return GuessResult{}, ErrNoGame
	}
	current.Ledger.Set(word, percent)
	current.RecordGuess(in.PlayerID, in.PlayerName, percent)
	if err := e.store.UpsertSession(ctx, current); err != nil {
		return GuessResult{}, err
	}
	observability.RecordGuess("scored")
	return GuessResult{Word: word, Percent: percent}, nil
}

func (e *Engine) solve(ctx context.Context, in GuessInput, secret string) (GuessResult, error) {
	unlock := e.locks.Lock(in.GroupID)
	defer unlock()

	s, err := e.activeSession(ctx, in.GroupID)
	if err != nil {
		return GuessResult{}, err
	}
	if s.SecretWord != secret {
		return GuessResult{}, ErrNoGame
	}
	attempts := s.RecordGuess(in.PlayerID, in.PlayerName, 100)
	result := GuessResult{
		Word:       secret,
		Percent:    100,
		Solved:     true,
		FirstTry:   attempts == 1,
		SecretWord: secret,
		Top:        TopWords(s.Ledger, FinalTopCount),
		Scoreboard: Scoreboard(s),
	}
	if err := e.store.DeleteSession(ctx, in.GroupID); err != nil {
		return GuessResult{}, err
	}
	observability.RecordGuess("solved")
	observability.RecordTransition("solved")
	e.l.WithField("group_id", in.GroupID).Info("word guessed")
	return result, nil
}

// Top returns the best guesses so far. rawCount is the optional count
// argument of the command.
func (e *Engine) Top(ctx context.Context, groupID int64, rawCount string) (TopResult, error) {
	s, err := e.activeSession(ctx, groupID)
	if err != nil {
		return TopResult{}, err
	}
	n, err := ParseTopCount(rawCount)
	if err != nil {
		return TopResult{}, err
	}
	if len(s.Ledger) == 0 {
		return TopResult{}, ErrNoGuesses
	}
	return TopResult{
		Entries:         TopWords(s.Ledger, n),
		IllustrationRef: s.IllustrationRef,
	}, nil
}

// Stop ends the group's game on behalf of its owner.
func (e *Engine) Stop(ctx context.Context, groupID, userID int64) (StopResult, error) {
	unlock := e.locks.Lock(groupID)
	defer unlock()

	s, err := e.store.GetSession(ctx, groupID)
	if err != nil {
		return StopResult{}, err
	}
	if s == nil {
		return StopResult{}, ErrNoGame
	}
	if s.OwnerID == 0 {
		return StopResult{}, ErrStillGenerating
	}
	if s.OwnerID != userID {
		return StopResult{}, ErrNotOwner
	}
	result := StopResult{
		SecretWord: s.SecretWord,
		Top:        TopWords(s.Ledger, FinalTopCount),
		Scoreboard: Scoreboard(s),
	}
	if err := e.store.DeleteSession(ctx, groupID); err != nil {
		return StopResult{}, err
	}
	observability.RecordTransition("stopped")
	e.l.WithField("group_id", groupID).Info("game stopped")
	return result, nil
}
