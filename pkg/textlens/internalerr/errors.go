package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")

	// Pipeline conditions. Each one terminates a run.
	ErrMissingInputFile       = errors.New("missing input file")
	ErrEmptyInputText         = errors.New("empty input text")
	ErrInsufficientVocabulary = errors.New("insufficient vocabulary")
	ErrMissingFontResource    = errors.New("missing font resource")
	ErrScoreOutOfRange        = errors.New("sentiment score out of range")
)
