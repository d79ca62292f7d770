package repository

// InsertTaskOptions holds parameters for inserting a new task.
// DueDate, DueTime and ListID are optional; empty means SQL NULL.
type InsertTaskOptions struct {
	UserID      string
	Title       string
	Description string
	DueDate     string // YYYY-MM-DD
	DueTime     string // HH:MM
	Priority    int
	ListID      string
}
