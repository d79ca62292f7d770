package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"couple-schedule-manager/internal/assistant"
	"couple-schedule-manager/internal/assistant/usecase"
	"couple-schedule-manager/internal/model"
	"couple-schedule-manager/internal/task/repository"
	"couple-schedule-manager/pkg/datemath"
	"couple-schedule-manager/pkg/gcalendar"
	"couple-schedule-manager/pkg/gemini"
)

// mock dependencies

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockRepo struct {
	failInsert bool
	failLists  bool
	lists      []model.List
	inserts    []repository.InsertTaskOptions
	listCalls  int
}

func (m *mockRepo) InsertTask(ctx context.Context, opt repository.InsertTaskOptions) (model.Task, error) {
	if m.failInsert {
		return model.Task{}, errors.New("db error")
	}
	m.inserts = append(m.inserts, opt)
	return model.Task{
		ID:          fmt.Sprintf("T%d", len(m.inserts)),
		UserID:      opt.UserID,
		Title:       opt.Title,
		Description: opt.Description,
		DueDate:     opt.DueDate,
		DueTime:     opt.DueTime,
		Priority:    opt.Priority,
		ListID:      opt.ListID,
	}, nil
}

func (m *mockRepo) ListLists(ctx context.Context, userID string) ([]model.List, error) {
	m.listCalls++
	if m.failLists {
		return nil, errors.New("db error")
	}
	return m.lists, nil
}

type mockCalendar struct {
	events []gcalendar.CreateEventRequest
	fail   bool
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	if m.fail {
		return nil, errors.New("cal error")
	}
	m.events = append(m.events, req)
	return &gcalendar.Event{ID: "evt-1", HtmlLink: "http://cal.link"}, nil
}

// newFakeGemini serves canned replies keyed by the prompt's role markers and
// by command strings embedded in the user message.
func newFakeGemini(t *testing.T, intentReply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gemini.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		prompt := req.Contents[0].Parts[0].Text

		if strings.Contains(prompt, "error_llm_500") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		var text string
		switch {
		case strings.Contains(prompt, "intent classifier"):
			text = intentReply
		case strings.Contains(prompt, "Confirm the task creation"):
			if strings.Contains(prompt, "fail_confirmation") {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			text = "All set! I've scheduled it for you two."
		default:
			text = "Happy to help you plan your week together!"
		}

		body := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
			"usageMetadata": map[string]int{"promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15},
		}
		json.NewEncoder(w).Encode(body)
	}))
}

func newTestUseCase(t *testing.T, ts *httptest.Server, repo *mockRepo, cal usecase.CalendarClient) assistant.UseCase {
	t.Helper()
	llm := gemini.NewClient("test-key")
	llm.SetAPIURL(ts.URL)
	normalizer, _ := datemath.NewNormalizer("UTC")
	return usecase.New(&mockLogger{}, llm, cal, repo, normalizer, "UTC")
}

func TestHandleChatTurn_CreateTask(t *testing.T) {
	intentReply := `{"action":"create_task","title":"call mom","dueDate":"tomorrow","dueTime":"15:00"}`
	ts := newFakeGemini(t, intentReply)
	defer ts.Close()

	repo := &mockRepo{lists: []model.List{{ID: "L1", Name: "Family"}}}
	uc := newTestUseCase(t, ts, repo, nil)

	sc := model.Scope{UserID: "u1", Email: "a@example.com"}
	out, err := uc.HandleChatTurn(context.Background(), sc, assistant.ChatTurnInput{
		Message: "Add a task to call mom tomorrow at 3pm",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.TaskCreated == nil {
		t.Fatalf("expected a created task")
	}
	if out.TaskCreated.Title != "call mom" {
		t.Errorf("unexpected title %q", out.TaskCreated.Title)
	}
	wantDate := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	if out.TaskCreated.DueDate != wantDate {
		t.Errorf("due date = %q, want %q", out.TaskCreated.DueDate, wantDate)
	}
	if out.TaskCreated.DueTime != "15:00" {
		t.Errorf("due time = %q, want 15:00", out.TaskCreated.DueTime)
	}
	if out.TaskCreated.Priority != 2 {
		t.Errorf("priority = %d, want default 2", out.TaskCreated.Priority)
	}
	if out.Message == "" {
		t.Errorf("expected a confirmation message")
	}

	if len(repo.inserts) != 1 {
		t.Fatalf("expected exactly one insert, got %d", len(repo.inserts))
	}
	// "Family" exists but was not referenced by name, so the task goes to inbox.
	if repo.inserts[0].ListID != "" {
		t.Errorf("list_id = %q, want empty (inbox)", repo.inserts[0].ListID)
	}
	if out.Usage.TotalTokens != 30 { // extraction + confirmation
		t.Errorf("usage total = %d, want 30", out.Usage.TotalTokens)
	}
}

func TestHandleChatTurn_ListResolution(t *testing.T) {
	tests := []struct {
		name       string
		listName   string
		wantListID string
	}{
		{name: "Exact match", listName: "Family", wantListID: "L1"},
		{name: "Case-insensitive match", listName: "family", wantListID: "L1"},
		{name: "Prefix is not a match", listName: "Fam", wantListID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intentReply := fmt.Sprintf(`{"action":"create_task","title":"buy cake","listName":%q}`, tt.listName)
			ts := newFakeGemini(t, intentReply)
			defer ts.Close()

			repo := &mockRepo{lists: []model.List{{ID: "L1", Name: "Family"}}}
			uc := newTestUseCase(t, ts, repo, nil)

			_, err := uc.HandleChatTurn(context.Background(), model.Scope{UserID: "u1"}, assistant.ChatTurnInput{
				Message: "add buy cake to " + tt.listName,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.inserts) != 1 {
				t.Fatalf("expected one insert, got %d", len(repo.inserts))
			}
			if repo.inserts[0].ListID != tt.wantListID {
				t.Errorf("list_id = %q, want %q", repo.inserts[0].ListID, tt.wantListID)
			}
		})
	}
}

func TestHandleChatTurn_ListsCached(t *testing.T) {
	intentReply := `{"action":"create_task","title":"buy cake","listName":"Family"}`
	ts := newFakeGemini(t, intentReply)
	defer ts.Close()

	repo := &mockRepo{lists: []model.List{{ID: "L1", Name: "Family"}}}
	uc := newTestUseCase(t, ts, repo, nil)

	sc := model.Scope{UserID: "u1"}
	for i := 0; i < 2; i++ {
		if _, err := uc.HandleChatTurn(context.Background(), sc, assistant.ChatTurnInput{Message: "add buy cake to Family"}); err != nil {
			t.Fatalf("turn %d: unexpected error: %v", i, err)
		}
	}

	if repo.listCalls != 1 {
		t.Errorf("expected one ListLists call across turns, got %d", repo.listCalls)
	}
}

func TestHandleChatTurn_ChatBranch(t *testing.T) {
	ts := newFakeGemini(t, `{"action":"chat"}`)
	defer ts.Close()

	repo := &mockRepo{}
	uc := newTestUseCase(t, ts, repo, nil)

	out, err := uc.HandleChatTurn(context.Background(), model.Scope{UserID: "u1"}, assistant.ChatTurnInput{
		Message: "How should we split chores this week?",
		Context: &assistant.ChatContext{TasksCount: 5, UpcomingTasks: 3, CompletedTasks: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TaskCreated != nil {
		t.Errorf("chat turn must not create a task")
	}
	if !strings.Contains(out.Message, "plan your week") {
		t.Errorf("unexpected chat reply: %q", out.Message)
	}
	if len(repo.inserts) != 0 {
		t.Errorf("chat turn must not insert, got %d inserts", len(repo.inserts))
	}
}

func TestHandleChatTurn_EmptyMessage(t *testing.T) {
	ts := newFakeGemini(t, `{"action":"chat"}`)
	defer ts.Close()

	uc := newTestUseCase(t, ts, &mockRepo{}, nil)

	_, err := uc.HandleChatTurn(context.Background(), model.Scope{UserID: "u1"}, assistant.ChatTurnInput{Message: "   "})
	if !errors.Is(err, assistant.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestHandleChatTurn_UpstreamFailure(t *testing.T) {
	ts := newFakeGemini(t, `{"action":"chat"}`)
	defer ts.Close()

	uc := newTestUseCase(t, ts, &mockRepo{}, nil)

	_, err := uc.HandleChatTurn(context.Background(), model.Scope{UserID: "u1"}, assistant.ChatTurnInput{Message: "error_llm_500"})
	if !errors.Is(err, assistant.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestHandleChatTurn_InsertFailureIsSoft(t *testing.T) {
	intentReply := `{"action":"create_task","title":"call mom"}`
	ts := newFakeGemini(t, intentReply)
	defer ts.Close()

	repo := &mockRepo{failInsert: true}
	uc := newTestUseCase(t, ts, repo, nil)

	out, err := uc.HandleChatTurn(context.Background(), model.Scope{UserID: "u1"}, assistant.ChatTurnInput{Message: "add a task to call mom"})
	if err != nil {
		t.Fatalf("insert failure must not fail the turn, got %v", err)
	}
	if out.TaskCreated != nil {
		t.Errorf("expected no created task")
	}
	if out.Message == "" {
		t.Errorf("expected an apologetic message")
	}
}

func TestHandleChatTurn_ConfirmationFallback(t *testing.T) {
	intentReply := `{"action":"create_task","title":"fail_confirmation","dueDate":"2024-12-25"}`
	ts := newFakeGemini(t, intentReply)
	defer ts.Close()

	repo := &mockRepo{}
	uc := newTestUseCase(t, ts, repo, nil)

	out, err := uc.HandleChatTurn(context.Background(), model.Scope{UserID: "u1"}, assistant.ChatTurnInput{Message: "add the task"})
	if err != nil {
		t.Fatalf("confirmation failure must not fail the turn, got %v", err)
	}
	if out.TaskCreated == nil {
		t.Fatalf("task creation succeeded, summary must be present")
	}
	if !strings.Contains(out.Message, "fail_confirmation") || !strings.Contains(out.Message, "2024-12-25") {
		t.Errorf("expected templated confirmation mentioning title and date, got %q", out.Message)
	}
}

func TestHandleChatTurn_CalendarSync(t *testing.T) {
	intentReply := `{"action":"create_task","title":"date night","dueDate":"2024-12-25","dueTime":"19:00"}`
	ts := newFakeGemini(t, intentReply)
	defer ts.Close()

	repo := &mockRepo{}
	cal := &mockCalendar{}
	uc := newTestUseCase(t, ts, repo, cal)

	out, err := uc.HandleChatTurn(context.Background(), model.Scope{UserID: "u1"}, assistant.ChatTurnInput{Message: "plan date night"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TaskCreated == nil {
		t.Fatalf("expected a created task")
	}
	if len(cal.events) != 1 {
		t.Fatalf("expected one calendar event, got %d", len(cal.events))
	}
	if cal.events[0].Summary != "date night" {
		t.Errorf("unexpected event summary %q", cal.events[0].Summary)
	}

	t.Run("Calendar failure is non-fatal", func(t *testing.T) {
		uc := newTestUseCase(t, ts, &mockRepo{}, &mockCalendar{fail: true})
		out, err := uc.HandleChatTurn(context.Background(), model.Scope{UserID: "u1"}, assistant.ChatTurnInput{Message: "plan date night"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.TaskCreated == nil {
			t.Errorf("task must still be created when calendar sync fails")
		}
	})
}

func TestHandleChatTurn_DegradeToChatOnBadExtraction(t *testing.T) {
	tests := []struct {
		name        string
		intentReply string
	}{
		{name: "Prose only", intentReply: "Sure, I can help with that!"},
		{name: "Unknown action", intentReply: `{"action":"delete_everything","title":"x"}`},
		{name: "Missing title", intentReply: `{"action":"create_task"}`},
		{name: "Blank title", intentReply: `{"action":"create_task","title":"  "}`},
		{name: "Broken JSON", intentReply: `{"action":"create_task","title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newFakeGemini(t, tt.intentReply)
			defer ts.Close()

			repo := &mockRepo{}
			uc := newTestUseCase(t, ts, repo, nil)

			out, err := uc.HandleChatTurn(context.Background(), model.Scope{UserID: "u1"}, assistant.ChatTurnInput{Message: "hmm"})
			if err != nil {
				t.Fatalf("degrade must not fail the turn, got %v", err)
			}
			if out.TaskCreated != nil {
				t.Errorf("degraded turn must not create a task")
			}
			if len(repo.inserts) != 0 {
				t.Errorf("degraded turn must not insert")
			}
		})
	}
}

func TestHandleChatTurn_ExtractionVariants(t *testing.T) {
	tests := []struct {
		name         string
		intentReply  string
		wantPriority int
	}{
		{name: "JSON wrapped in prose", intentReply: "Sure thing:\n{\"action\":\"create_task\",\"title\":\"Buy milk\",\"priority\":3}\nDone.", wantPriority: 3},
		{name: "JSON in code fence", intentReply: "```json\n{\"action\":\"create_task\",\"title\":\"Buy milk\",\"priority\":1}\n```", wantPriority: 1},
		{name: "Priority out of range clamps to default", intentReply: `{"action":"create_task","title":"Buy milk","priority":9}`, wantPriority: 2},
		{name: "Priority missing defaults", intentReply: `{"action":"create_task","title":"Buy milk"}`, wantPriority: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newFakeGemini(t, tt.intentReply)
			defer ts.Close()

			repo := &mockRepo{}
			uc := newTestUseCase(t, ts, repo, nil)

			out, err := uc.HandleChatTurn(context.Background(), model.Scope{UserID: "u1"}, assistant.ChatTurnInput{Message: "add buy milk"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.TaskCreated == nil {
				t.Fatalf("expected a created task")
			}
			if out.TaskCreated.Priority != tt.wantPriority {
				t.Errorf("priority = %d, want %d", out.TaskCreated.Priority, tt.wantPriority)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	ts := newFakeGemini(t, `{"action":"chat"}`)
	defer ts.Close()

	uc := newTestUseCase(t, ts, &mockRepo{}, nil)

	out, err := uc.Suggest(context.Background(), model.Scope{UserID: "u1"}, assistant.SuggestionsInput{
		Tasks: []assistant.UpcomingTask{{Title: "Buy milk", DueDate: "2024-05-02", Priority: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Suggestions == "" {
		t.Errorf("expected suggestions text")
	}

	t.Run("Upstream failure", func(t *testing.T) {
		_, err := uc.Suggest(context.Background(), model.Scope{UserID: "u1"}, assistant.SuggestionsInput{
			Tasks: []assistant.UpcomingTask{{Title: "error_llm_500"}},
		})
		if !errors.Is(err, assistant.ErrUpstreamUnavailable) {
			t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})
}
