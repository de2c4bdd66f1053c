package tt

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tt-go/internal/database/sqlc"
)

// ProjectInput describes a new project. A nil HourlyRate leaves the project
// unpriced.
type ProjectInput struct {
	Name        string
	Description string
	HourlyRate  *float64
}

// ProjectUpdate holds the editable project fields. ClearRate removes the
// rate; otherwise a nil field is left unchanged.
type ProjectUpdate struct {
	Name        *string
	Description *string
	HourlyRate  *float64
	ClearRate   bool
}

// ProjectDetail is a project with its members and tasks.
type ProjectDetail struct {
	Project   sqlc.Project
	Employees []sqlc.Employee
	Tasks     []sqlc.Task
}

// ListProjects returns the employer's projects with member and task counts.
func (s *TTService) ListProjects(ctx context.Context, employerID int64) ([]sqlc.ListProjectsByEmployerRow, error) {
	projects, err := s.database.ListProjectsByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// CreateProject adds a project owned by the employer.
func (s *TTService) CreateProject(ctx context.Context, employerID int64, in ProjectInput) (*sqlc.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, Invalid("name is required")
	}
	rate, err := rateParam(in.HourlyRate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	project, err := s.database.CreateProject(ctx, sqlc.CreateProjectParams{
		EmployerID:  employerID,
		Name:        name,
		Description: nullString(in.Description),
		HourlyRate:  rate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	s.logger.Info("project created", "employer_id", employerID, "project_id", project.ID)
	return project, nil
}

// GetProjectDetail returns the project with its employees and tasks.
func (s *TTService) GetProjectDetail(ctx context.Context, employerID, projectID int64) (*ProjectDetail, error) {
	project, err := s.ownedProject(ctx, employerID, projectID)
	if err != nil {
		return nil, err
	}
	employees, err := s.database.ListEmployeesByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing project employees: %w", err)
	}
	tasks, err := s.database.ListTasksByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing project tasks: %w", err)
	}
	return &ProjectDetail{Project: *project, Employees: employees, Tasks: tasks}, nil
}

// UpdateProject applies u to an owned project.
func (s *TTService) UpdateProject(ctx context.Context, employerID, projectID int64, u ProjectUpdate) (*sqlc.Project, error) {
	project, err := s.ownedProject(ctx, employerID, projectID)
	if err != nil {
		return nil, err
	}

	params := sqlc.UpdateProjectParams{
		Name:        project.Name,
		Description: project.Description,
		HourlyRate:  project.HourlyRate,
		UpdatedAt:   s.now(),
		ID:          project.ID,
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return nil, Invalid("name cannot be empty")
		}
		params.Name = name
	}
	if u.Description != nil {
		params.Description = nullString(*u.Description)
	}
	switch {
	case u.ClearRate:
		params.HourlyRate = sql.NullFloat64{}
	case u.HourlyRate != nil:
		if params.HourlyRate, err = rateParam(u.HourlyRate); err != nil {
			return nil, err
		}
	}

	updated, err := s.database.UpdateProject(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return updated, nil
}

// DeleteProject removes an owned project with its tasks and time logs.
func (s *TTService) DeleteProject(ctx context.Context, employerID, projectID int64) error {
	project, err := s.ownedProject(ctx, employerID, projectID)
	if err != nil {
		return err
	}
	logs, err := s.database.ListTimeLogs(ctx, sqlc.ListTimeLogsParams{
		ProjectID: sql.NullInt64{Int64: project.ID, Valid: true},
		Limit:     -1,
	})
	if err != nil {
		return fmt.Errorf("listing project time logs: %w", err)
	}
	if _, err := s.database.DeleteProject(ctx, project.ID); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	s.purgeScreenshots(ctx, logs)
	s.logger.Info("project deleted", "employer_id", employerID, "project_id", project.ID, "time_logs", len(logs))
	return nil
}

// AssignEmployeeToProject makes an employee a member of an owned project.
func (s *TTService) AssignEmployeeToProject(ctx context.Context, employerID, projectID, employeeID int64) error {
	project, err := s.ownedProject(ctx, employerID, projectID)
	if err != nil {
		return err
	}
	if _, err := s.requireEmployee(ctx, employeeID); err != nil {
		return err
	}
	if err := s.database.AssignEmployeeToProject(ctx, project.ID, employeeID); err != nil {
		return fmt.Errorf("assigning employee to project: %w", err)
	}
	return nil
}

// ownedProject loads a project and hides it from employers that do not own it.
func (s *TTService) ownedProject(ctx context.Context, employerID, projectID int64) (*sqlc.Project, error) {
	project, err := s.database.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("finding project: %w", err)
	}
	if project == nil || project.EmployerID != employerID {
		return nil, NotFound("project not found or access denied")
	}
	return project, nil
}

func rateParam(rate *float64) (sql.NullFloat64, error) {
	if rate == nil {
		return sql.NullFloat64{}, nil
	}
	if *rate < 0 {
		return sql.NullFloat64{}, Invalid("hourly_rate cannot be negative")
	}
	return sql.NullFloat64{Float64: *rate, Valid: true}, nil
}
