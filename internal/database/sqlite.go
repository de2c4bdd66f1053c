package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"tt-go/internal/database/migrations"
	"tt-go/internal/database/sqlc"
	"tt-go/internal/tt"
)

// SQLiteDatabase implements the tt.Database interface using SQLite.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

// NewSQLiteDatabase opens a SQLite database.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}, nil
}

// OpenConnection opens and configures a SQLite connection pool.
// Connection options go in the DSN so that every pooled connection gets them.
func OpenConnection(path string) (*sql.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_foreign_keys=on&_busy_timeout=5000"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to :memory: is its own database.
	if strings.HasPrefix(path, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// DB exposes the underlying connection pool.
func (s *SQLiteDatabase) DB() *sql.DB {
	return s.db
}

// Path returns the path the database was opened with.
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// notFound turns sql.ErrNoRows into a nil error.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

// mapConstraint wraps unique-constraint violations in tt.ErrDuplicate.
func mapConstraint(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && (se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return fmt.Errorf("%w: %v", tt.ErrDuplicate, err)
	}
	return err
}

// Employer operations

func (s *SQLiteDatabase) CreateEmployer(ctx context.Context, params sqlc.CreateEmployerParams) (*sqlc.Employer, error) {
	id, err := s.queries.CreateEmployer(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("inserting employer: %w", mapConstraint(err))
	}
	return s.FindEmployerByID(ctx, id)
}

func (s *SQLiteDatabase) FindEmployerByID(ctx context.Context, id int64) (*sqlc.Employer, error) {
	employer, err := s.queries.GetEmployer(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &employer, nil
}

func (s *SQLiteDatabase) FindEmployerByEmail(ctx context.Context, email string) (*sqlc.Employer, error) {
	employer, err := s.queries.GetEmployerByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err)
	}
	return &employer, nil
}

func (s *SQLiteDatabase) UpdateEmployerProfile(ctx context.Context, params sqlc.UpdateEmployerProfileParams) (*sqlc.Employer, error) {
	n, err := s.queries.UpdateEmployerProfile(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("updating employer: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindEmployerByID(ctx, params.ID)
}

// Employee operations

func (s *SQLiteDatabase) CreateEmployee(ctx context.Context, params sqlc.CreateEmployeeParams) (*sqlc.Employee, error) {
	id, err := s.queries.CreateEmployee(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("inserting employee: %w", mapConstraint(err))
	}
	return s.FindEmployeeByID(ctx, id)
}

func (s *SQLiteDatabase) FindEmployeeByID(ctx context.Context, id int64) (*sqlc.Employee, error) {
	employee, err := s.queries.GetEmployee(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &employee, nil
}

func (s *SQLiteDatabase) FindEmployeeByEmail(ctx context.Context, email string) (*sqlc.Employee, error) {
	employee, err := s.queries.GetEmployeeByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err)
	}
	return &employee, nil
}

func (s *SQLiteDatabase) FindEmployeeByUsername(ctx context.Context, username string) (*sqlc.Employee, error) {
	employee, err := s.queries.GetEmployeeByUsername(ctx, sql.NullString{String: username, Valid: true})
	if err != nil {
		return nil, notFound(err)
	}
	return &employee, nil
}

func (s *SQLiteDatabase) ListEmployees(ctx context.Context) ([]sqlc.Employee, error) {
	employees, err := s.queries.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	return employees, nil
}

func (s *SQLiteDatabase) ListEmployeesByProject(ctx context.Context, projectID int64) ([]sqlc.Employee, error) {
	employees, err := s.queries.ListEmployeesByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project employees: %w", err)
	}
	return employees, nil
}

func (s *SQLiteDatabase) ListEmployeesByEmployer(ctx context.Context, employerID int64) ([]sqlc.Employee, error) {
	employees, err := s.queries.ListEmployeesByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("listing employer employees: %w", err)
	}
	return employees, nil
}

func (s *SQLiteDatabase) UpdateEmployee(ctx context.Context, params sqlc.UpdateEmployeeParams) (*sqlc.Employee, error) {
	n, err := s.queries.UpdateEmployee(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("updating employee: %w", mapConstraint(err))
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindEmployeeByID(ctx, params.ID)
}

func (s *SQLiteDatabase) SetEmployeeMacAddress(ctx context.Context, employeeID int64, mac string, at time.Time) error {
	err := s.queries.SetEmployeeMacAddress(ctx, sqlc.SetEmployeeMacAddressParams{
		LatestMacAddress: sql.NullString{String: mac, Valid: mac != ""},
		UpdatedAt:        at,
		ID:               employeeID,
	})
	if err != nil {
		return fmt.Errorf("storing mac address: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) DeleteEmployee(ctx context.Context, id int64, at time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	// The employee's logs go with the cascade; their seconds must leave the
	// task counters first.
	if err := qtx.SubtractEmployeeTaskSeconds(ctx, sqlc.SubtractEmployeeTaskSecondsParams{
		EmployeeID: id,
		UpdatedAt:  at,
	}); err != nil {
		return false, fmt.Errorf("subtracting employee seconds: %w", err)
	}

	n, err := qtx.DeleteEmployee(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting employee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing transaction: %w", err)
	}
	return n > 0, nil
}

// Admin operations

func (s *SQLiteDatabase) CreateAdmin(ctx context.Context, params sqlc.CreateAdminParams) (*sqlc.Admin, error) {
	id, err := s.queries.CreateAdmin(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("inserting admin: %w", mapConstraint(err))
	}
	admin, err := s.queries.GetAdmin(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading admin: %w", err)
	}
	return &admin, nil
}

func (s *SQLiteDatabase) FindAdminByEmail(ctx context.Context, email string) (*sqlc.Admin, error) {
	admin, err := s.queries.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

// Project operations

func (s *SQLiteDatabase) CreateProject(ctx context.Context, params sqlc.CreateProjectParams) (*sqlc.Project, error) {
	id, err := s.queries.CreateProject(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("inserting project: %w", err)
	}
	return s.FindProjectByID(ctx, id)
}

func (s *SQLiteDatabase) FindProjectByID(ctx context.Context, id int64) (*sqlc.Project, error) {
	project, err := s.queries.GetProject(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

func (s *SQLiteDatabase) ListProjectsByEmployer(ctx context.Context, employerID int64) ([]sqlc.ListProjectsByEmployerRow, error) {
	projects, err := s.queries.ListProjectsByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("listing employer projects: %w", err)
	}
	return projects, nil
}

func (s *SQLiteDatabase) ListProjectsByEmployee(ctx context.Context, employeeID int64) ([]sqlc.Project, error) {
	projects, err := s.queries.ListProjectsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing employee projects: %w", err)
	}
	return projects, nil
}

func (s *SQLiteDatabase) UpdateProject(ctx context.Context, params sqlc.UpdateProjectParams) (*sqlc.Project, error) {
	n, err := s.queries.UpdateProject(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindProjectByID(ctx, params.ID)
}

func (s *SQLiteDatabase) DeleteProject(ctx context.Context, id int64) (bool, error) {
	n, err := s.queries.DeleteProject(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting project: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteDatabase) AssignEmployeeToProject(ctx context.Context, projectID, employeeID int64) error {
	err := s.queries.AddProjectEmployee(ctx, sqlc.AddProjectEmployeeParams{
		ProjectID:  projectID,
		EmployeeID: employeeID,
	})
	if err != nil {
		return fmt.Errorf("adding project employee: %w", err)
	}
	return nil
}

// Task operations

func (s *SQLiteDatabase) CreateTask(ctx context.Context, params sqlc.CreateTaskParams) (*sqlc.Task, error) {
	id, err := s.queries.CreateTask(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}
	return s.FindTaskByID(ctx, id)
}

func (s *SQLiteDatabase) FindTaskByID(ctx context.Context, id int64) (*sqlc.Task, error) {
	task, err := s.queries.GetTask(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &task, nil
}

func (s *SQLiteDatabase) ListTasksByProject(ctx context.Context, projectID int64) ([]sqlc.Task, error) {
	tasks, err := s.queries.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project tasks: %w", err)
	}
	return tasks, nil
}

func (s *SQLiteDatabase) ListTasksByEmployer(ctx context.Context, employerID int64) ([]sqlc.Task, error) {
	tasks, err := s.queries.ListTasksByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("listing employer tasks: %w", err)
	}
	return tasks, nil
}

func (s *SQLiteDatabase) ListTasksByEmployee(ctx context.Context, employeeID int64) ([]sqlc.Task, error) {
	tasks, err := s.queries.ListTasksByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing employee tasks: %w", err)
	}
	return tasks, nil
}

func (s *SQLiteDatabase) ListEmployeeTasksForEmployer(ctx context.Context, employeeID, employerID int64) ([]sqlc.ListEmployeeTasksForEmployerRow, error) {
	rows, err := s.queries.ListEmployeeTasksForEmployer(ctx, sqlc.ListEmployeeTasksForEmployerParams{
		EmployeeID: employeeID,
		EmployerID: employerID,
	})
	if err != nil {
		return nil, fmt.Errorf("listing employee tasks for employer: %w", err)
	}
	return rows, nil
}

func (s *SQLiteDatabase) UpdateTask(ctx context.Context, params sqlc.UpdateTaskParams) (*sqlc.Task, error) {
	n, err := s.queries.UpdateTask(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindTaskByID(ctx, params.ID)
}

func (s *SQLiteDatabase) DeleteTask(ctx context.Context, id int64) (bool, error) {
	n, err := s.queries.DeleteTask(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting task: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteDatabase) AssignEmployeeToTask(ctx context.Context, task *sqlc.Task, employeeID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	if err := qtx.AddTaskEmployee(ctx, sqlc.AddTaskEmployeeParams{TaskID: task.ID, EmployeeID: employeeID}); err != nil {
		return fmt.Errorf("adding task employee: %w", err)
	}
	if err := qtx.AddProjectEmployee(ctx, sqlc.AddProjectEmployeeParams{ProjectID: task.ProjectID, EmployeeID: employeeID}); err != nil {
		return fmt.Errorf("adding project employee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) RemoveEmployeeFromTask(ctx context.Context, taskID, employeeID int64) (bool, error) {
	n, err := s.queries.RemoveTaskEmployee(ctx, sqlc.RemoveTaskEmployeeParams{TaskID: taskID, EmployeeID: employeeID})
	if err != nil {
		return false, fmt.Errorf("removing task employee: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteDatabase) CountTaskEmployeesByEmployer(ctx context.Context, employerID int64) (int64, error) {
	n, err := s.queries.CountTaskEmployeesByEmployer(ctx, employerID)
	if err != nil {
		return 0, fmt.Errorf("counting employees: %w", err)
	}
	return n, nil
}

// Time log operations

// CreateTimeLog inserts the log and bumps its task counter in one transaction.
func (s *SQLiteDatabase) CreateTimeLog(ctx context.Context, params sqlc.CreateTimeLogParams) (*sqlc.TimeLog, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	id, err := qtx.CreateTimeLog(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("inserting time log: %w", err)
	}

	n, err := qtx.AddTaskSeconds(ctx, sqlc.AddTaskSecondsParams{
		Seconds:   params.Duration,
		UpdatedAt: params.CreatedAt,
		ID:        params.TaskID,
	})
	if err != nil {
		return nil, fmt.Errorf("updating task counter: %w", err)
	}
	if n != 1 {
		return nil, fmt.Errorf("updating task counter: task %d not found", params.TaskID)
	}

	log, err := qtx.GetTimeLog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading time log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return &log, nil
}

func (s *SQLiteDatabase) FindTimeLogByID(ctx context.Context, id int64) (*sqlc.TimeLog, error) {
	log, err := s.queries.GetTimeLog(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &log, nil
}

func (s *SQLiteDatabase) ListTimeLogs(ctx context.Context, params sqlc.ListTimeLogsParams) ([]sqlc.TimeLog, error) {
	if params.Limit == 0 {
		params.Limit = -1
	}
	logs, err := s.queries.ListTimeLogs(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("listing time logs: %w", err)
	}
	return logs, nil
}

// DeleteTimeLog removes the log and takes its duration back off the task
// counter in one transaction.
func (s *SQLiteDatabase) DeleteTimeLog(ctx context.Context, id int64, at time.Time) (*sqlc.TimeLog, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	log, err := qtx.GetTimeLog(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading time log: %w", err)
	}

	if _, err := qtx.DeleteTimeLog(ctx, id); err != nil {
		return nil, fmt.Errorf("deleting time log: %w", err)
	}
	if _, err := qtx.AddTaskSeconds(ctx, sqlc.AddTaskSecondsParams{
		Seconds:   -log.Duration,
		UpdatedAt: at,
		ID:        log.TaskID,
	}); err != nil {
		return nil, fmt.Errorf("updating task counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return &log, nil
}

// Invitation operations

func (s *SQLiteDatabase) SavePendingInvite(ctx context.Context, invite tt.PendingInvite) (*sqlc.Employee, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	var employeeID int64
	existing, err := qtx.GetEmployeeByEmail(ctx, invite.Email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		employeeID, err = qtx.CreateEmployee(ctx, sqlc.CreateEmployeeParams{
			Name:      invite.Name,
			Email:     invite.Email,
			Active:    false,
			CreatedAt: invite.CreatedAt,
			UpdatedAt: invite.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("inserting pending employee: %w", mapConstraint(err))
		}
	case err != nil:
		return nil, fmt.Errorf("finding employee: %w", err)
	case existing.Active:
		return nil, fmt.Errorf("employee %d is already active: %w", existing.ID, tt.ErrDuplicate)
	default:
		employeeID = existing.ID
		if invite.Name != "" && invite.Name != existing.Name {
			if err := qtx.UpdateEmployeeName(ctx, sqlc.UpdateEmployeeNameParams{
				Name:      invite.Name,
				UpdatedAt: invite.CreatedAt,
				ID:        existing.ID,
			}); err != nil {
				return nil, fmt.Errorf("renaming pending employee: %w", err)
			}
		}
	}

	var projectID sql.NullInt64
	if invite.ProjectID != nil {
		projectID = sql.NullInt64{Int64: *invite.ProjectID, Valid: true}
		if err := qtx.AddProjectEmployee(ctx, sqlc.AddProjectEmployeeParams{
			ProjectID:  *invite.ProjectID,
			EmployeeID: employeeID,
		}); err != nil {
			return nil, fmt.Errorf("adding project employee: %w", err)
		}
	}

	if err := qtx.UpsertActivationToken(ctx, sqlc.UpsertActivationTokenParams{
		Token:      invite.Token,
		Email:      invite.Email,
		EmployeeID: employeeID,
		ProjectID:  projectID,
		CreatedAt:  invite.CreatedAt,
		ExpiresAt:  invite.ExpiresAt,
	}); err != nil {
		return nil, fmt.Errorf("saving activation token: %w", mapConstraint(err))
	}

	employee, err := qtx.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("reading employee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return &employee, nil
}

func (s *SQLiteDatabase) FindActivationToken(ctx context.Context, token string) (*sqlc.ActivationToken, error) {
	row, err := s.queries.GetActivationToken(ctx, token)
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

// ActivateEmployee consumes the token with a conditional update, so of two
// concurrent activations only one commits.
func (s *SQLiteDatabase) ActivateEmployee(ctx context.Context, a tt.Activation) (*sqlc.Employee, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	token, err := qtx.GetActivationToken(ctx, a.Token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tt.ErrTokenUnusable
		}
		return nil, fmt.Errorf("reading activation token: %w", err)
	}

	n, err := qtx.ConsumeActivationToken(ctx, sqlc.ConsumeActivationTokenParams{Token: a.Token, Now: a.Now})
	if err != nil {
		return nil, fmt.Errorf("consuming activation token: %w", err)
	}
	if n == 0 {
		return nil, tt.ErrTokenUnusable
	}

	n, err = qtx.ActivateEmployee(ctx, sqlc.ActivateEmployeeParams{
		Username:     sql.NullString{String: a.Username, Valid: true},
		PasswordHash: sql.NullString{String: a.PasswordHash, Valid: true},
		UpdatedAt:    a.Now,
		ID:           token.EmployeeID,
	})
	if err != nil {
		return nil, fmt.Errorf("activating employee: %w", mapConstraint(err))
	}
	if n == 0 {
		return nil, tt.ErrTokenUnusable
	}

	employee, err := qtx.GetEmployee(ctx, token.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("reading employee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return &employee, nil
}

// Lifecycle

// Migrate brings the schema to the latest version.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// BackupTo writes a consistent copy of the database to destPath using VACUUM INTO.
func (s *SQLiteDatabase) BackupTo(ctx context.Context, destPath string) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements tt.Database interface
var _ tt.Database = (*SQLiteDatabase)(nil)
