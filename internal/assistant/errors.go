package assistant

import "errors"

// Domain-specific errors for the assistant package.
//
// Only ErrEmptyMessage and ErrUpstreamUnavailable ever reach the delivery
// layer. A failed task insert (ErrTaskPersistence) is reported inside a
// normal ChatTurnOutput, and a malformed extraction silently degrades the
// turn to plain chat.
var (
	ErrEmptyMessage        = errors.New("message is required")
	ErrUpstreamUnavailable = errors.New("AI service unavailable")
	ErrTaskPersistence     = errors.New("failed to create task")
)
