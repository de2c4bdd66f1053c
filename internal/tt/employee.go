package tt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tt-go/internal/database/sqlc"
)

// EmployeeInput is an admin-created employee. Without a password the
// employee is created pending and receives an activation link.
type EmployeeInput struct {
	Name     string
	Email    string
	Username string
	Password string
}

// EmployeeUpdate holds the admin-editable employee fields.
type EmployeeUpdate struct {
	Name            *string
	Email           *string
	Active          *bool
	ProfileImageURL *string
}

// CreatedEmployee is the result of an admin create. The token fields are
// set only for pending employees.
type CreatedEmployee struct {
	Employee        *sqlc.Employee
	ActivationToken string
	ExpiresAt       *time.Time
}

// ListEmployees returns every employee.
func (s *TTService) ListEmployees(ctx context.Context) ([]sqlc.Employee, error) {
	employees, err := s.database.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	return employees, nil
}

// CreateEmployee adds an employee, active when credentials are supplied and
// pending otherwise.
func (s *TTService) CreateEmployee(ctx context.Context, in EmployeeInput) (*CreatedEmployee, error) {
	if in.Password == "" {
		if in.Username != "" {
			return nil, Invalid("username is chosen at activation when no password is given")
		}
		res, employee, err := s.invitePending(ctx, in.Name, in.Email, nil)
		if err != nil {
			return nil, err
		}
		return &CreatedEmployee{Employee: employee, ActivationToken: res.ActivationToken, ExpiresAt: res.ExpiresAt}, nil
	}

	employee, err := s.RegisterEmployee(ctx, EmployeeRegistration{
		Name:     in.Name,
		Email:    in.Email,
		Username: in.Username,
		Password: in.Password,
	})
	if err != nil {
		return nil, err
	}
	return &CreatedEmployee{Employee: employee}, nil
}

// GetEmployee returns the employee or a not-found error.
func (s *TTService) GetEmployee(ctx context.Context, employeeID int64) (*sqlc.Employee, error) {
	return s.requireEmployee(ctx, employeeID)
}

// UpdateEmployee applies the non-nil fields of u.
func (s *TTService) UpdateEmployee(ctx context.Context, employeeID int64, u EmployeeUpdate) (*sqlc.Employee, error) {
	employee, err := s.requireEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	params := sqlc.UpdateEmployeeParams{
		Name:            employee.Name,
		Email:           employee.Email,
		ProfileImageUrl: employee.ProfileImageUrl,
		Active:          employee.Active,
		UpdatedAt:       s.now(),
		ID:              employee.ID,
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return nil, Invalid("name cannot be empty")
		}
		params.Name = name
	}
	if u.Email != nil {
		email := normalizeEmail(*u.Email)
		if !strings.Contains(email, "@") {
			return nil, Invalid("a valid email is required")
		}
		if email != employee.Email {
			other, err := s.database.FindEmployeeByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("checking employee email: %w", err)
			}
			if other != nil {
				return nil, Conflict("an employee with this email already exists")
			}
		}
		params.Email = email
	}
	if u.Active != nil {
		if *u.Active && !employee.PasswordHash.Valid {
			return nil, Invalid("a pending employee is activated through the activation link")
		}
		params.Active = *u.Active
	}
	if u.ProfileImageURL != nil {
		params.ProfileImageUrl = nullString(*u.ProfileImageURL)
	}

	updated, err := s.database.UpdateEmployee(ctx, params)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, Conflict("an employee with this email already exists")
		}
		return nil, fmt.Errorf("updating employee: %w", err)
	}
	return updated, nil
}

// DeleteEmployee removes the employee, their time logs and their screenshots.
func (s *TTService) DeleteEmployee(ctx context.Context, employeeID int64) error {
	employee, err := s.requireEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	logs, err := s.database.ListTimeLogs(ctx, sqlc.ListTimeLogsParams{
		EmployeeID: sql.NullInt64{Int64: employee.ID, Valid: true},
		Limit:      -1,
	})
	if err != nil {
		return fmt.Errorf("listing employee time logs: %w", err)
	}

	if _, err := s.database.DeleteEmployee(ctx, employee.ID, s.now()); err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	s.purgeScreenshots(ctx, logs)
	s.logger.Info("employee deleted", "employee_id", employee.ID, "time_logs", len(logs))
	return nil
}

// MyProjects returns the projects the employee is a member of.
func (s *TTService) MyProjects(ctx context.Context, employeeID int64) ([]sqlc.Project, error) {
	projects, err := s.database.ListProjectsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing employee projects: %w", err)
	}
	return projects, nil
}

// MyTasks returns the tasks the employee is assigned to.
func (s *TTService) MyTasks(ctx context.Context, employeeID int64) ([]sqlc.Task, error) {
	tasks, err := s.database.ListTasksByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing employee tasks: %w", err)
	}
	return tasks, nil
}

func (s *TTService) requireEmployee(ctx context.Context, employeeID int64) (*sqlc.Employee, error) {
	employee, err := s.database.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("finding employee: %w", err)
	}
	if employee == nil {
		return nil, NotFound("employee not found")
	}
	return employee, nil
}
