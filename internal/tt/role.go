package tt

import "fmt"

// Role is the account kind carried in every token.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployer Role = "employer"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleEmployee:
		return true
	}
	return false
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskOnHold     TaskStatus = "on_hold"
)

// ParseTaskStatus validates s. An empty string yields TaskPending.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case "":
		return TaskPending, nil
	case TaskPending, TaskInProgress, TaskCompleted, TaskOnHold:
		return TaskStatus(s), nil
	}
	return "", Invalid(fmt.Sprintf("invalid task status %q (expected pending, in_progress, completed or on_hold)", s))
}
