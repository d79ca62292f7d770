package assistant

import (
	"context"

	"couple-schedule-manager/internal/model"
)

// UseCase defines the business logic interface for the assistant domain.
type UseCase interface {
	// HandleChatTurn processes one chat turn end to end: classifies intent,
	// creates a task when asked to, and returns the assistant's reply.
	HandleChatTurn(ctx context.Context, sc model.Scope, input ChatTurnInput) (ChatTurnOutput, error)

	// Suggest returns 3-5 scheduling suggestions for the caller's upcoming tasks.
	Suggest(ctx context.Context, sc model.Scope, input SuggestionsInput) (SuggestionsOutput, error)
}
