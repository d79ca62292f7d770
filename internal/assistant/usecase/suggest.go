package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"couple-schedule-manager/internal/assistant"
	"couple-schedule-manager/internal/model"
	"couple-schedule-manager/pkg/gemini"
)

// Suggest asks the model for time-management advice over the caller's
// upcoming tasks.
func (uc *implUseCase) Suggest(ctx context.Context, sc model.Scope, input assistant.SuggestionsInput) (assistant.SuggestionsOutput, error) {
	tasksJSON, err := json.Marshal(input.Tasks)
	if err != nil {
		return assistant.SuggestionsOutput{}, fmt.Errorf("failed to encode tasks: %w", err)
	}

	uc.l.Infof(ctx, "Suggest: user=%s tasks=%d", sc.UserID, len(input.Tasks))

	resp, err := uc.llm.GenerateContent(ctx, gemini.GenerateRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: gemini.BuildSuggestionsPrompt(string(tasksJSON))}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.8,
			MaxOutputTokens: 300,
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "Suggest: generation failed: %v", err)
		return assistant.SuggestionsOutput{}, fmt.Errorf("%w: %v", assistant.ErrUpstreamUnavailable, err)
	}

	return assistant.SuggestionsOutput{
		Suggestions: strings.TrimSpace(resp.Text()),
		Usage:       usageFrom(resp),
	}, nil
}
