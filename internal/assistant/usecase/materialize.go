package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"couple-schedule-manager/internal/assistant"
	"couple-schedule-manager/internal/model"
	"couple-schedule-manager/internal/task/repository"
	"couple-schedule-manager/pkg/gcalendar"
)

// materialize persists a validated create_task intent as one task row.
// All failures are wrapped in ErrTaskPersistence; the orchestrator reports
// them inside a normal response instead of failing the turn.
func (uc *implUseCase) materialize(ctx context.Context, sc model.Scope, intent assistant.TaskIntent) (model.Task, error) {
	listID, err := uc.resolveListID(ctx, sc.UserID, intent.ListName)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", assistant.ErrTaskPersistence, err)
	}

	task, err := uc.repo.InsertTask(ctx, repository.InsertTaskOptions{
		UserID:      sc.UserID,
		Title:       intent.Title,
		Description: intent.Description,
		DueDate:     intent.DueDate,
		DueTime:     intent.DueTime,
		Priority:    intent.Priority,
		ListID:      listID,
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", assistant.ErrTaskPersistence, err)
	}

	// Calendar sync is best-effort and never affects the creation outcome.
	uc.tryCreateCalendarEvent(ctx, task)

	return task, nil
}

// resolveListID matches the intent's list name against the user's lists,
// case-insensitive and exact. No match means the default/inbox bucket —
// a task is never silently attached to the wrong list.
func (uc *implUseCase) resolveListID(ctx context.Context, userID, listName string) (string, error) {
	if listName == "" {
		return "", nil
	}

	lists, err := uc.knownLists(ctx, userID)
	if err != nil {
		return "", err
	}

	for _, list := range lists {
		if strings.EqualFold(list.Name, listName) {
			return list.ID, nil
		}
	}

	uc.l.Infof(ctx, "resolveListID: no list named %q for user=%s, using inbox", listName, userID)
	return "", nil
}

// knownLists returns the user's lists, cached for a short TTL so repeated
// chat turns don't re-query the lists table.
func (uc *implUseCase) knownLists(ctx context.Context, userID string) ([]model.List, error) {
	if lists, ok := uc.listsCache.Get(userID); ok {
		return lists, nil
	}

	lists, err := uc.repo.ListLists(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.listsCache.Add(userID, lists)
	return lists, nil
}

// tryCreateCalendarEvent schedules the task on Google Calendar when a due
// date is set. Failure is logged and swallowed.
func (uc *implUseCase) tryCreateCalendarEvent(ctx context.Context, task model.Task) {
	if uc.calendar == nil || task.DueDate == "" {
		return
	}

	loc, err := time.LoadLocation(uc.timezone)
	if err != nil {
		loc = time.UTC
	}

	dueTime := task.DueTime
	if dueTime == "" {
		dueTime = "09:00"
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", task.DueDate+" "+dueTime, loc)
	if err != nil {
		uc.l.Warnf(ctx, "tryCreateCalendarEvent: bad due fields for task=%s: %v", task.ID, err)
		return
	}

	_, err = uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  "primary",
		Summary:     task.Title,
		Description: task.Description,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Timezone:    uc.timezone,
	})
	if err != nil {
		uc.l.Warnf(ctx, "tryCreateCalendarEvent: calendar event failed for task=%s (non-fatal): %v", task.ID, err)
	}
}
