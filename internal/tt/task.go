package tt

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tt-go/internal/database/sqlc"
)

// TaskInput describes a new task. An empty Status means pending.
type TaskInput struct {
	Name        string
	Description string
	Status      string
}

// TaskUpdate holds the editable task fields. Nil leaves a field unchanged.
type TaskUpdate struct {
	Name        *string
	Description *string
	Status      *string
}

// ListTasks returns the tasks of an owned project.
func (s *TTService) ListTasks(ctx context.Context, employerID, projectID int64) ([]sqlc.Task, error) {
	project, err := s.ownedProject(ctx, employerID, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.database.ListTasksByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask adds a task to an owned project.
func (s *TTService) CreateTask(ctx context.Context, employerID, projectID int64, in TaskInput) (*sqlc.Task, error) {
	project, err := s.ownedProject(ctx, employerID, projectID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, Invalid("name is required")
	}
	status, err := ParseTaskStatus(in.Status)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task, err := s.database.CreateTask(ctx, sqlc.CreateTaskParams{
		ProjectID:   project.ID,
		Name:        name,
		Description: nullString(in.Description),
		Status:      string(status),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	s.logger.Info("task created", "project_id", project.ID, "task_id", task.ID)
	return task, nil
}

// UpdateTask applies u to a task of an owned project.
func (s *TTService) UpdateTask(ctx context.Context, employerID, projectID, taskID int64, u TaskUpdate) (*sqlc.Task, error) {
	task, err := s.ownedTask(ctx, employerID, projectID, taskID)
	if err != nil {
		return nil, err
	}

	params := sqlc.UpdateTaskParams{
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		UpdatedAt:   s.now(),
		ID:          task.ID,
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
	if u.Status != nil {
		status, err := ParseTaskStatus(*u.Status)
		if err != nil {
			return nil, err
		}
		params.Status = string(status)
	}

	updated, err := s.database.UpdateTask(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return updated, nil
}

// DeleteTask removes a task of an owned project with its time logs.
func (s *TTService) DeleteTask(ctx context.Context, employerID, projectID, taskID int64) error {
	task, err := s.ownedTask(ctx, employerID, projectID, taskID)
	if err != nil {
		return err
	}
	logs, err := s.database.ListTimeLogs(ctx, sqlc.ListTimeLogsParams{
		TaskID: sql.NullInt64{Int64: task.ID, Valid: true},
		Limit:  -1,
	})
	if err != nil {
		return fmt.Errorf("listing task time logs: %w", err)
	}
	if _, err := s.database.DeleteTask(ctx, task.ID); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	s.purgeScreenshots(ctx, logs)
	return nil
}

// AssignEmployeeToTask assigns an employee to a task and its project.
func (s *TTService) AssignEmployeeToTask(ctx context.Context, employerID, projectID, taskID, employeeID int64) error {
	task, err := s.ownedTask(ctx, employerID, projectID, taskID)
	if err != nil {
		return err
	}
	if _, err := s.requireEmployee(ctx, employeeID); err != nil {
		return err
	}
	if err := s.database.AssignEmployeeToTask(ctx, task, employeeID); err != nil {
		return fmt.Errorf("assigning employee to task: %w", err)
	}
	return nil
}

// RemoveEmployeeFromTask unassigns an employee. The task must belong to the
// employer and the employee must currently be assigned.
func (s *TTService) RemoveEmployeeFromTask(ctx context.Context, employerID, employeeID, taskID int64) error {
	task, err := s.database.FindTaskByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("finding task: %w", err)
	}
	if task == nil {
		return NotFound("task not found")
	}
	project, err := s.database.FindProjectByID(ctx, task.ProjectID)
	if err != nil {
		return fmt.Errorf("finding project: %w", err)
	}
	if project == nil || project.EmployerID != employerID {
		return Forbidden("you are not authorized to modify this task")
	}

	removed, err := s.database.RemoveEmployeeFromTask(ctx, task.ID, employeeID)
	if err != nil {
		return fmt.Errorf("removing employee from task: %w", err)
	}
	if !removed {
		return NotFound("employee not assigned to this task")
	}
	return nil
}

func (s *TTService) ownedTask(ctx context.Context, employerID, projectID, taskID int64) (*sqlc.Task, error) {
	project, err := s.ownedProject(ctx, employerID, projectID)
	if err != nil {
		return nil, err
	}
	task, err := s.database.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("finding task: %w", err)
	}
	if task == nil || task.ProjectID != project.ID {
		return nil, NotFound("task not found or access denied")
	}
	return task, nil
}
