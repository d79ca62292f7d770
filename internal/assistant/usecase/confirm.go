package usecase

import (
	"context"
	"fmt"
	"strings"

	"couple-schedule-manager/internal/assistant"
	"couple-schedule-manager/internal/model"
	"couple-schedule-manager/pkg/gemini"
)

// composeConfirmation asks the model for a short acknowledgment of the
// created task. The task already exists at this point, so a generation
// failure falls back to a templated confirmation instead of failing the turn.
func (uc *implUseCase) composeConfirmation(ctx context.Context, task model.Task, originalMessage string) (string, assistant.Usage) {
	resp, err := uc.llm.GenerateContent(ctx, gemini.GenerateRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: gemini.BuildConfirmationPrompt(task.Title, task.DueDate, task.DueTime, task.Priority, originalMessage)}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 200,
		},
	})
	if err != nil {
		uc.l.Warnf(ctx, "composeConfirmation: generation failed, using template (non-fatal): %v", err)
		return templatedConfirmation(task), assistant.Usage{}
	}

	confirmation := strings.TrimSpace(resp.Text())
	if confirmation == "" {
		uc.l.Warnf(ctx, "composeConfirmation: empty reply, using template")
		return templatedConfirmation(task), usageFrom(resp)
	}

	return confirmation, usageFrom(resp)
}

// templatedConfirmation is the deterministic fallback acknowledgment.
func templatedConfirmation(task model.Task) string {
	msg := fmt.Sprintf("Done! I've added %q to your tasks", task.Title)
	if task.DueDate != "" {
		msg += ", due " + task.DueDate
		if task.DueTime != "" {
			msg += " at " + task.DueTime
		}
	}
	return msg + "."
}
