package game

import (
	errs "github.com/iamwavecut/guessbot/internal/errors"
)

var (
	ErrSessionExists    = errs.New(errs.ErrConflict, "game already running")
	ErrNoGame           = errs.New(errs.ErrConflict, "no game running")
	ErrStillGenerating  = errs.New(errs.ErrConflict, "illustration is still being generated")
	ErrNoPickIntent     = errs.New(errs.ErrNotFound, "no pick in progress")
	ErrNoGuesses        = errs.New(errs.ErrNotFound, "no guesses yet")
	ErrMultipleTokens   = errs.New(errs.ErrValidation, "exactly one word expected")
	ErrNotLetters       = errs.New(errs.ErrValidation, "only english letters allowed")
	ErrUnknownWord      = errs.New(errs.ErrValidation, "unknown word")
	ErrCountNotNumber   = errs.New(errs.ErrValidation, "count must be a number")
	ErrInvalidCount     = errs.New(errs.ErrValidation, "count must be between 1 and 100")
	ErrQueueFull        = errs.New(errs.ErrCapacity, "generation queue is full")
	ErrGenerationFailed = errs.New(errs.ErrGeneration, "illustration generation failed")
	ErrNotOwner         = errs.New(errs.ErrPermission, "only the owner can stop the game")
)
