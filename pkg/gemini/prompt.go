package gemini

import "fmt"

// IntentExtractionSystemPrompt instructs the model to classify a chat turn
// and emit a single JSON object, nothing else.
const IntentExtractionSystemPrompt = `You are the intent classifier for a couple's schedule management app.
Decide whether the user wants to CREATE A TASK or just CHAT.

Reply with ONLY a single JSON object. No markdown, no code blocks, no explanation text.

If the user wants to create a task:
{
  "action": "create_task",
  "title": "short task title (required)",
  "description": "extra details or empty string",
  "dueDate": "natural language like 'tomorrow' / 'next week' or YYYY-MM-DD, omit if none",
  "dueTime": "natural language like 'morning' / 'evening' or HH:MM, omit if none",
  "priority": 1-4 (1 = urgent, 4 = someday; omit if not mentioned),
  "listName": "name of the list the task belongs to, omit if not mentioned"
}

Otherwise:
{"action": "chat"}

EXAMPLE INPUT:
"Add a task to call mom tomorrow at 3pm"

EXAMPLE OUTPUT:
{"action": "create_task", "title": "call mom", "dueDate": "tomorrow", "dueTime": "15:00"}`

// ChatSystemPrompt is the system context for plain conversation turns.
const ChatSystemPrompt = `You are a helpful AI assistant for a couple's schedule management app.
Help users organize their tasks, suggest priorities, and provide scheduling advice.
Be friendly, concise, and couple-focused.`

// SuggestionsSystemPrompt asks for time-management advice over a task list.
const SuggestionsSystemPrompt = `You are a scheduling assistant. Analyze the tasks and provide 3-5 actionable suggestions for better time management.`

// BuildIntentPrompt builds the full extraction prompt for one chat turn.
func BuildIntentPrompt(message, conversationContext string) string {
	prompt := IntentExtractionSystemPrompt
	if conversationContext != "" {
		prompt += "\n\nContext: " + conversationContext
	}
	return prompt + "\n\nUser message:\n" + message
}

// BuildChatPrompt builds the plain-chat prompt for one turn.
func BuildChatPrompt(message, conversationContext string) string {
	prompt := ChatSystemPrompt
	if conversationContext != "" {
		prompt += "\nContext: " + conversationContext
	}
	return prompt + "\n\nUser: " + message + "\n\nAssistant:"
}

// BuildConfirmationPrompt asks for a short acknowledgment of a created task.
func BuildConfirmationPrompt(title, dueDate, dueTime string, priority int, originalMessage string) string {
	summary := fmt.Sprintf("title=%q", title)
	if dueDate != "" {
		summary += fmt.Sprintf(", due date=%s", dueDate)
	}
	if dueTime != "" {
		summary += fmt.Sprintf(", due time=%s", dueTime)
	}
	summary += fmt.Sprintf(", priority=%d", priority)

	return ChatSystemPrompt +
		"\n\nA task was just created for the user: " + summary +
		"\nThe user asked: " + fmt.Sprintf("%q", originalMessage) +
		"\n\nConfirm the task creation in 1-2 friendly sentences. Mention the title and, if set, when it is due. Do not use markdown."
}

// BuildSuggestionsPrompt asks for suggestions over the caller's upcoming tasks.
// tasksJSON is the JSON-encoded list of {title, due_date, priority}.
func BuildSuggestionsPrompt(tasksJSON string) string {
	return SuggestionsSystemPrompt +
		"\n\nHere are my upcoming tasks: " + tasksJSON + ". Give me suggestions."
}
