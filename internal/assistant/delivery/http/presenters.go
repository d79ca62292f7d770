package http

import (
	"couple-schedule-manager/internal/assistant"
)

// --- Request DTOs ---

type chatContextReq struct {
	TasksCount     int `json:"tasksCount"`
	UpcomingTasks  int `json:"upcomingTasks"`
	CompletedTasks int `json:"completedTasks"`
}

type chatReq struct {
	Message string          `json:"message" binding:"required"`
	Context *chatContextReq `json:"context"`
}

func (r chatReq) validate() error { return nil }

func (r chatReq) toInput() assistant.ChatTurnInput {
	in := assistant.ChatTurnInput{Message: r.Message}
	if r.Context != nil {
		in.Context = &assistant.ChatContext{
			TasksCount:     r.Context.TasksCount,
			UpcomingTasks:  r.Context.UpcomingTasks,
			CompletedTasks: r.Context.CompletedTasks,
		}
	}
	return in
}

// ---

type upcomingTaskReq struct {
	Title    string `json:"title"`
	DueDate  string `json:"due_date"`
	Priority int    `json:"priority"`
}

type suggestionsReq struct {
	TasksJSON string `form:"tasks"`

	tasks []upcomingTaskReq // decoded from TasksJSON
}

func (r suggestionsReq) validate() error { return nil }

func (r suggestionsReq) toInput() assistant.SuggestionsInput {
	tasks := make([]assistant.UpcomingTask, len(r.tasks))
	for i, t := range r.tasks {
		tasks[i] = assistant.UpcomingTask{
			Title:    t.Title,
			DueDate:  t.DueDate,
			Priority: t.Priority,
		}
	}
	return assistant.SuggestionsInput{Tasks: tasks}
}

// --- Response DTOs ---

type usageResp struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func newUsageResp(u assistant.Usage) usageResp {
	return usageResp{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

type taskCreatedResp struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	DueDate  string `json:"due_date,omitempty"`
	DueTime  string `json:"due_time,omitempty"`
	Priority int    `json:"priority"`
}

type chatResp struct {
	Message     string           `json:"message"`
	TaskCreated *taskCreatedResp `json:"task_created,omitempty"`
	Usage       usageResp        `json:"usage"`
}

func (h *handler) newChatResp(out assistant.ChatTurnOutput) chatResp {
	resp := chatResp{
		Message: out.Message,
		Usage:   newUsageResp(out.Usage),
	}
	if out.TaskCreated != nil {
		resp.TaskCreated = &taskCreatedResp{
			ID:       out.TaskCreated.ID,
			Title:    out.TaskCreated.Title,
			DueDate:  out.TaskCreated.DueDate,
			DueTime:  out.TaskCreated.DueTime,
			Priority: out.TaskCreated.Priority,
		}
	}
	return resp
}

type suggestionsResp struct {
	Suggestions string    `json:"suggestions"`
	Usage       usageResp `json:"usage"`
}

func (h *handler) newSuggestionsResp(out assistant.SuggestionsOutput) suggestionsResp {
	return suggestionsResp{
		Suggestions: out.Suggestions,
		Usage:       newUsageResp(out.Usage),
	}
}
