package repository

import (
	"context"

	"couple-schedule-manager/internal/model"
)

// Repository is the composed interface for the task data store.
type Repository interface {
	TaskRepository
	ListRepository
}

// TaskRepository defines data access for the Task entity.
type TaskRepository interface {
	// InsertTask persists a new task and returns the stored row.
	InsertTask(ctx context.Context, opt InsertTaskOptions) (model.Task, error)
}

// ListRepository defines data access for the List entity.
type ListRepository interface {
	// ListLists returns every list owned by the given user, oldest first.
	ListLists(ctx context.Context, userID string) ([]model.List, error)
}
