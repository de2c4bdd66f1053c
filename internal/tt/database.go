package tt

import (
	"context"
	"time"

	"tt-go/internal/database/sqlc"
)

// Database is the relational store. Lookups return (nil, nil) when the row
// does not exist. Methods that touch more than one table run in a single
// transaction.
type Database interface {
	// Employers

	CreateEmployer(ctx context.Context, params sqlc.CreateEmployerParams) (*sqlc.Employer, error)
	FindEmployerByID(ctx context.Context, id int64) (*sqlc.Employer, error)
	FindEmployerByEmail(ctx context.Context, email string) (*sqlc.Employer, error)
	UpdateEmployerProfile(ctx context.Context, params sqlc.UpdateEmployerProfileParams) (*sqlc.Employer, error)

	// Employees

	CreateEmployee(ctx context.Context, params sqlc.CreateEmployeeParams) (*sqlc.Employee, error)
	FindEmployeeByID(ctx context.Context, id int64) (*sqlc.Employee, error)
	FindEmployeeByEmail(ctx context.Context, email string) (*sqlc.Employee, error)
	FindEmployeeByUsername(ctx context.Context, username string) (*sqlc.Employee, error)
	ListEmployees(ctx context.Context) ([]sqlc.Employee, error)
	ListEmployeesByProject(ctx context.Context, projectID int64) ([]sqlc.Employee, error)

	// ListEmployeesByEmployer returns employees assigned to any project or
	// task owned by the employer.
	ListEmployeesByEmployer(ctx context.Context, employerID int64) ([]sqlc.Employee, error)
	UpdateEmployee(ctx context.Context, params sqlc.UpdateEmployeeParams) (*sqlc.Employee, error)
	SetEmployeeMacAddress(ctx context.Context, employeeID int64, mac string, at time.Time) error

	// DeleteEmployee removes the employee and their time logs, subtracting
	// the logged seconds from the affected task counters.
	DeleteEmployee(ctx context.Context, id int64, at time.Time) (bool, error)

	// Admins

	CreateAdmin(ctx context.Context, params sqlc.CreateAdminParams) (*sqlc.Admin, error)
	FindAdminByEmail(ctx context.Context, email string) (*sqlc.Admin, error)

	// Projects

	CreateProject(ctx context.Context, params sqlc.CreateProjectParams) (*sqlc.Project, error)
	FindProjectByID(ctx context.Context, id int64) (*sqlc.Project, error)
	ListProjectsByEmployer(ctx context.Context, employerID int64) ([]sqlc.ListProjectsByEmployerRow, error)
	ListProjectsByEmployee(ctx context.Context, employeeID int64) ([]sqlc.Project, error)
	UpdateProject(ctx context.Context, params sqlc.UpdateProjectParams) (*sqlc.Project, error)
	DeleteProject(ctx context.Context, id int64) (bool, error)
	AssignEmployeeToProject(ctx context.Context, projectID, employeeID int64) error

	// Tasks

	CreateTask(ctx context.Context, params sqlc.CreateTaskParams) (*sqlc.Task, error)
	FindTaskByID(ctx context.Context, id int64) (*sqlc.Task, error)
	ListTasksByProject(ctx context.Context, projectID int64) ([]sqlc.Task, error)
	ListTasksByEmployer(ctx context.Context, employerID int64) ([]sqlc.Task, error)
	ListTasksByEmployee(ctx context.Context, employeeID int64) ([]sqlc.Task, error)
	ListEmployeeTasksForEmployer(ctx context.Context, employeeID, employerID int64) ([]sqlc.ListEmployeeTasksForEmployerRow, error)
	UpdateTask(ctx context.Context, params sqlc.UpdateTaskParams) (*sqlc.Task, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)

	// AssignEmployeeToTask adds the employee to the task and to the task's project.
	AssignEmployeeToTask(ctx context.Context, task *sqlc.Task, employeeID int64) error
	RemoveEmployeeFromTask(ctx context.Context, taskID, employeeID int64) (bool, error)
	CountTaskEmployeesByEmployer(ctx context.Context, employerID int64) (int64, error)

	// Time logs

	// CreateTimeLog inserts the log and adds its duration to the task counter
	// in one transaction.
	CreateTimeLog(ctx context.Context, params sqlc.CreateTimeLogParams) (*sqlc.TimeLog, error)
	FindTimeLogByID(ctx context.Context, id int64) (*sqlc.TimeLog, error)
	ListTimeLogs(ctx context.Context, params sqlc.ListTimeLogsParams) ([]sqlc.TimeLog, error)

	// DeleteTimeLog removes the log and subtracts its duration from the task
	// counter in one transaction. It returns the deleted row, or nil.
	DeleteTimeLog(ctx context.Context, id int64, at time.Time) (*sqlc.TimeLog, error)

	// Invitations

	// SavePendingInvite creates or renames the inactive employee for the
	// email, replaces the activation token for that email and optionally adds
	// the employee to a project.
	SavePendingInvite(ctx context.Context, invite PendingInvite) (*sqlc.Employee, error)
	FindActivationToken(ctx context.Context, token string) (*sqlc.ActivationToken, error)

	// ActivateEmployee consumes the token and activates its employee. It
	// fails with ErrTokenUnusable when the token cannot be consumed and with
	// ErrDuplicate when the username is taken.
	ActivateEmployee(ctx context.Context, activation Activation) (*sqlc.Employee, error)

	// Lifecycle

	Migrate() error
	CheckMigrations() error
	Close() error
}

// PendingInvite is the write set of one invitation.
type PendingInvite struct {
	Name      string
	Email     string
	Token     string
	ProjectID *int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Activation is the write set of one token consumption.
type Activation struct {
	Token        string
	Username     string
	PasswordHash string
	Now          time.Time
}
