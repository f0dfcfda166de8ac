package models

import "time"

// Status is the lifecycle state of a task. Stored as a plain string enum.
type Status string

const (
	StatusTodo     Status = "TODO"
	StatusProgress Status = "PROGRESS"
	StatusDone     Status = "DONE"
)

// AllStatuses returns the statuses in board order.
func AllStatuses() []Status {
	return []Status{StatusTodo, StatusProgress, StatusDone}
}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusProgress, StatusDone:
		return true
	default:
		return false
	}
}

// User is an account owner. The password hash never serializes to clients.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Task belongs to exactly one user. DueAt is nil when no due date is set;
// the API normalizes both JSON null and "" to nil.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	DueAt       *time.Time `json:"dueAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
