package service

import "errors"

var (
	// ErrSessionNotFound means no student session exists for the handle.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired means the session exists but aged past its TTL.
	ErrSessionExpired = errors.New("session expired")
)
