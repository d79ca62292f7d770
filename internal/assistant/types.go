package assistant

// ChatContext is the optional task snapshot the client sends with a turn.
type ChatContext struct {
	TasksCount     int `json:"tasksCount"`
	UpcomingTasks  int `json:"upcomingTasks"`
	CompletedTasks int `json:"completedTasks"`
}

// ChatTurnInput is the input for one assistant chat turn.
type ChatTurnInput struct {
	Message string
	Context *ChatContext
}

// IntentKind discriminates what the user wants from a chat turn.
type IntentKind string

const (
	IntentChat       IntentKind = "chat"
	IntentCreateTask IntentKind = "create_task"
)

// TaskIntent is the validated, typed result of intent extraction.
// Fields beyond Kind are meaningful only when Kind == IntentCreateTask;
// DueDate and DueTime are already normalized, Priority already clamped.
type TaskIntent struct {
	Kind        IntentKind
	Title       string
	Description string
	DueDate     string // YYYY-MM-DD or ""
	DueTime     string // HH:MM or ""
	Priority    int    // 1-4
	ListName    string
}

// TaskSummary describes a task the assistant just created.
type TaskSummary struct {
	ID       string
	Title    string
	DueDate  string
	DueTime  string
	Priority int
}

// Usage is opaque token metering passed through from the model provider.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Add accumulates usage across the turn's generation calls.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
	}
}

// ChatTurnOutput is the envelope returned for every processed turn.
// TaskCreated is nil unless a task was materialized this turn.
type ChatTurnOutput struct {
	Message     string
	TaskCreated *TaskSummary
	Usage       Usage
}

// UpcomingTask is one entry of the suggestions input.
type UpcomingTask struct {
	Title    string `json:"title"`
	DueDate  string `json:"due_date,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

// SuggestionsInput is the input for the suggestions operation.
type SuggestionsInput struct {
	Tasks []UpcomingTask
}

// SuggestionsOutput is the result of the suggestions operation.
type SuggestionsOutput struct {
	Suggestions string
	Usage       Usage
}
