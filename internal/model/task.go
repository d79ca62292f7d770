package model

import "time"

// Task is a task row as persisted in the tasks table.
// DueDate (YYYY-MM-DD), DueTime (HH:MM) and ListID are empty when unset;
// the repository maps empty strings to SQL NULL.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	DueDate     string
	DueTime     string
	Priority    int
	ListID      string
	Completed   bool
	CreatedAt   time.Time
}

// List is a user-owned task list (e.g. "Family", "Groceries").
type List struct {
	ID   string
	Name string
}
