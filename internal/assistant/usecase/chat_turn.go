package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"couple-schedule-manager/internal/assistant"
	"couple-schedule-manager/internal/model"
	"couple-schedule-manager/pkg/gemini"
)

// taskFailureMessage is the user-facing note when the task insert fails.
// The chat turn itself still succeeds; the client shows this as a normal reply.
const taskFailureMessage = "I understood what you want, but I couldn't save the task right now. Please try again in a moment."

// HandleChatTurn processes one chat turn through a fixed sequence of states:
// validate input, extract intent, then either materialize a task and confirm
// it, or answer as plain chat. Exactly one output is produced per turn.
func (uc *implUseCase) HandleChatTurn(ctx context.Context, sc model.Scope, input assistant.ChatTurnInput) (assistant.ChatTurnOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return assistant.ChatTurnOutput{}, assistant.ErrEmptyMessage
	}

	contextStr := buildContextString(sc, input.Context)

	uc.l.Infof(ctx, "HandleChatTurn: user=%s message_length=%d", sc.UserID, len(input.Message))

	intent, usage, err := uc.extractIntent(ctx, input.Message, contextStr)
	if err != nil {
		uc.l.Errorf(ctx, "HandleChatTurn: intent extraction failed: %v", err)
		return assistant.ChatTurnOutput{}, fmt.Errorf("%w: %v", assistant.ErrUpstreamUnavailable, err)
	}

	if intent.Kind == assistant.IntentCreateTask {
		return uc.handleCreateTask(ctx, sc, intent, input.Message, usage)
	}

	reply, chatUsage, err := uc.chat(ctx, input.Message, contextStr)
	if err != nil {
		uc.l.Errorf(ctx, "HandleChatTurn: chat completion failed: %v", err)
		return assistant.ChatTurnOutput{}, fmt.Errorf("%w: %v", assistant.ErrUpstreamUnavailable, err)
	}

	return assistant.ChatTurnOutput{
		Message: reply,
		Usage:   usage.Add(chatUsage),
	}, nil
}

// handleCreateTask materializes the intent and composes the confirmation.
// A persistence failure resolves to a normal output with TaskCreated nil:
// the turn must never hard-fail once intent extraction succeeded.
func (uc *implUseCase) handleCreateTask(ctx context.Context, sc model.Scope, intent assistant.TaskIntent, originalMessage string, usage assistant.Usage) (assistant.ChatTurnOutput, error) {
	task, err := uc.materialize(ctx, sc, intent)
	if err != nil {
		if !errors.Is(err, assistant.ErrTaskPersistence) {
			uc.l.Errorf(ctx, "HandleChatTurn: unexpected materialize error: %v", err)
		}
		uc.l.Warnf(ctx, "HandleChatTurn: task not created for user=%s: %v", sc.UserID, err)
		return assistant.ChatTurnOutput{
			Message: taskFailureMessage,
			Usage:   usage,
		}, nil
	}

	uc.l.Infof(ctx, "HandleChatTurn: created task id=%s title=%q user=%s", task.ID, task.Title, sc.UserID)

	confirmation, confirmUsage := uc.composeConfirmation(ctx, task, originalMessage)

	return assistant.ChatTurnOutput{
		Message: confirmation,
		TaskCreated: &assistant.TaskSummary{
			ID:       task.ID,
			Title:    task.Title,
			DueDate:  task.DueDate,
			DueTime:  task.DueTime,
			Priority: task.Priority,
		},
		Usage: usage.Add(confirmUsage),
	}, nil
}

// chat answers a plain conversation turn.
func (uc *implUseCase) chat(ctx context.Context, message, contextStr string) (string, assistant.Usage, error) {
	resp, err := uc.llm.GenerateContent(ctx, gemini.GenerateRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: gemini.BuildChatPrompt(message, contextStr)}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 500,
		},
	})
	if err != nil {
		return "", assistant.Usage{}, err
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		reply = "I'm sorry, I couldn't process that."
	}

	return reply, usageFrom(resp), nil
}

// buildContextString renders the caller identity and task counts for prompts.
func buildContextString(sc model.Scope, chatCtx *assistant.ChatContext) string {
	var sb strings.Builder
	if sc.Email != "" {
		sb.WriteString("Current user: " + sc.Email + ".")
	}
	if chatCtx != nil {
		raw, err := json.Marshal(chatCtx)
		if err == nil {
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.Write(raw)
		}
	}
	return sb.String()
}

// usageFrom converts the provider's metering block to the domain type.
func usageFrom(resp *gemini.GenerateResponse) assistant.Usage {
	if resp == nil || resp.UsageMetadata == nil {
		return assistant.Usage{}
	}
	return assistant.Usage{
		PromptTokens:     resp.UsageMetadata.PromptTokenCount,
		CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
		TotalTokens:      resp.UsageMetadata.TotalTokenCount,
	}
}
