package postgre

import (
	"context"
	"database/sql"

	"couple-schedule-manager/internal/model"
	repo "couple-schedule-manager/internal/task/repository"
)

// InsertTask inserts a new task row and returns the created entity.
func (r *implRepository) InsertTask(ctx context.Context, opt repo.InsertTaskOptions) (model.Task, error) {
	const query = `
		INSERT INTO tasks (user_id, title, description, due_date, due_time, priority, list_id, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, NOW())
		RETURNING id, created_at`

	task := model.Task{
		UserID:      opt.UserID,
		Title:       opt.Title,
		Description: opt.Description,
		DueDate:     opt.DueDate,
		DueTime:     opt.DueTime,
		Priority:    opt.Priority,
		ListID:      opt.ListID,
		Completed:   false,
	}

	err := r.db.QueryRowContext(ctx, query,
		opt.UserID,
		opt.Title,
		nullable(opt.Description),
		nullable(opt.DueDate),
		nullable(opt.DueTime),
		opt.Priority,
		nullable(opt.ListID),
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("InsertTask"), err)
		return model.Task{}, repo.ErrFailedToInsert
	}

	return task, nil
}

// ListLists returns all lists owned by the user, oldest first.
func (r *implRepository) ListLists(ctx context.Context, userID string) ([]model.List, error) {
	const query = `SELECT id, name FROM lists WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListLists"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		var list model.List
		if err := rows.Scan(&list.ID, &list.Name); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListLists"), err)
			return nil, repo.ErrFailedToList
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, repo.ErrFailedToList
	}

	return lists, nil
}

// nullable maps "" to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
