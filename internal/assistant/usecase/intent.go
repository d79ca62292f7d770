package usecase

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"couple-schedule-manager/internal/assistant"
	"couple-schedule-manager/pkg/gemini"
)

const defaultPriority = 2

// rawIntent mirrors the JSON object the extraction prompt asks for.
// Nothing beyond these fields is ever trusted.
type rawIntent struct {
	Action      string  `json:"action"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"dueDate"`
	DueTime     string  `json:"dueTime"`
	Priority    float64 `json:"priority"`
	ListName    string  `json:"listName"`
}

// extractIntent classifies one chat turn with a single generation round-trip.
// A transport failure propagates; any malformed or ambiguous reply degrades
// the turn to plain chat and is only logged.
func (uc *implUseCase) extractIntent(ctx context.Context, message, contextStr string) (assistant.TaskIntent, assistant.Usage, error) {
	resp, err := uc.llm.GenerateContent(ctx, gemini.GenerateRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: gemini.BuildIntentPrompt(message, contextStr)}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.2, // low temperature for deterministic JSON output
			MaxOutputTokens: 512,
		},
	})
	if err != nil {
		return assistant.TaskIntent{}, assistant.Usage{}, err
	}

	usage := usageFrom(resp)
	raw := resp.Text()

	jsonStr := extractJSONObject(raw)
	if jsonStr == "" {
		uc.l.Warnf(ctx, "extractIntent: no JSON object in reply, degrading to chat. Raw=%q", raw)
		return assistant.TaskIntent{Kind: assistant.IntentChat}, usage, nil
	}

	var parsed rawIntent
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		uc.l.Warnf(ctx, "extractIntent: unparsable JSON, degrading to chat. Raw=%q Scanned=%q err=%v", raw, jsonStr, err)
		return assistant.TaskIntent{Kind: assistant.IntentChat}, usage, nil
	}

	if parsed.Action != string(assistant.IntentCreateTask) || strings.TrimSpace(parsed.Title) == "" {
		if parsed.Action == string(assistant.IntentCreateTask) {
			uc.l.Warnf(ctx, "extractIntent: create_task without title, degrading to chat. Scanned=%q", jsonStr)
		}
		return assistant.TaskIntent{Kind: assistant.IntentChat}, usage, nil
	}

	return uc.buildCreateTaskIntent(parsed), usage, nil
}

// buildCreateTaskIntent finalizes a validated create_task extraction:
// the due fields are normalized here and nowhere else (titles and
// descriptions are never run through the normalizer).
func (uc *implUseCase) buildCreateTaskIntent(parsed rawIntent) assistant.TaskIntent {
	return assistant.TaskIntent{
		Kind:        assistant.IntentCreateTask,
		Title:       strings.TrimSpace(parsed.Title),
		Description: strings.TrimSpace(parsed.Description),
		DueDate:     uc.normalizer.NormalizeDate(parsed.DueDate, uc.now()),
		DueTime:     uc.normalizer.NormalizeTime(parsed.DueTime),
		Priority:    clampPriority(int(parsed.Priority)),
		ListName:    strings.TrimSpace(parsed.ListName),
	}
}

// clampPriority coerces the extracted priority into [1,4], defaulting to 2.
func clampPriority(p int) int {
	if p < 1 || p > 4 {
		return defaultPriority
	}
	return p
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// extractJSONObject returns the first balanced {...} substring of text,
// or "" when none exists. Models wrap JSON in prose or code fences; fences
// are stripped first, then braces are scanned with string/escape awareness.
func extractJSONObject(text string) string {
	if matches := codeFenceRe.FindStringSubmatch(text); len(matches) > 1 {
		text = matches[1]
	}

	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return ""
}
