package server

import "errors"

var (
	ErrNoAuthorization = errors.New("no authorization")
	ErrInvalidToken    = errors.New("invalid token")
)

var (
	ErrStatusNotParticipant   = "NOT_A_PARTICIPANT"
	ErrStatusInvalidPayload   = "INVALID_PAYLOAD"
	ErrStatusCompletionFailed = "COMPLETION_FAILED"
)
