package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrMatchFull    = errors.New("match is full")
	ErrMatchEnded   = errors.New("match has ended")
	ErrNotInMatch   = errors.New("player is not in the match")
	ErrInvalidInput = errors.New("input vector out of range")

	// Storage errors
	ErrMatchNotFound = errors.New("match not found")

	// Transport errors
	ErrConnClosed = errors.New("connection closed")
)
