package tt

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tt-go/internal/database/sqlc"
)

// Activity is one recent time log in an employer summary.
type Activity struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employee_id"`
	TaskID     int64  `json:"task_id"`
	ProjectID  int64  `json:"project_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Duration   int64  `json:"duration"`
}

// EmployerSummary aggregates an employer's projects. Times are seconds and
// costs skip unpriced projects.
type EmployerSummary struct {
	ProjectsCount    int               `json:"projects_count"`
	EmployeesCount   int64             `json:"employees_count"`
	TasksCount       int               `json:"tasks_count"`
	RecentActivities []Activity        `json:"recent_activities"`
	TotalCost        float64           `json:"total_cost"`
	TotalTime        int64             `json:"total_time"`
	ProjectWiseTime  map[int64]int64   `json:"project_wise_time"`
	ProjectWiseCost  map[int64]float64 `json:"project_wise_cost"`
}

// TaskSummary is one task line of a project summary.
type TaskSummary struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Status       string   `json:"status"`
	TotalSeconds int64    `json:"total_seconds"`
	TotalMinutes int64    `json:"total_minutes"`
	TotalHours   float64  `json:"total_hours"`
	TotalCost    *float64 `json:"total_cost"`
}

// ProjectSummary is the per-task breakdown of one project.
type ProjectSummary struct {
	ProjectID    int64         `json:"project_id"`
	ProjectName  string        `json:"project_name"`
	HourlyRate   *float64      `json:"hourly_rate"`
	Tasks        []TaskSummary `json:"tasks"`
	TotalSeconds int64         `json:"total_seconds"`
	TotalHours   float64       `json:"total_hours"`
	TotalCost    *float64      `json:"total_cost"`
}

// WorkloadTask is a task line of an employee workload.
type WorkloadTask struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Status            string   `json:"status"`
	TotalSeconds      int64    `json:"total_seconds"`
	ProjectID         int64    `json:"project_id"`
	ProjectName       string   `json:"project_name"`
	ProjectHourlyRate *float64 `json:"project_hourly_rate"`
}

// EmployeeWorkload is an employee of the employer with the tasks they hold
// on the employer's projects.
type EmployeeWorkload struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Username     *string        `json:"username"`
	Active       bool           `json:"active"`
	TotalSeconds int64          `json:"total_seconds"`
	TotalCost    float64        `json:"total_cost"`
	Tasks        []WorkloadTask `json:"tasks"`
}

const recentActivityCount = 5

// EmployerSummary totals the employer's projects from the task counters and
// lists the latest activity.
func (s *TTService) EmployerSummary(ctx context.Context, employerID int64) (*EmployerSummary, error) {
	projects, err := s.database.ListProjectsByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	tasks, err := s.database.ListTasksByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	employees, err := s.database.CountTaskEmployeesByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("counting employees: %w", err)
	}
	recent, err := s.database.ListTimeLogs(ctx, sqlc.ListTimeLogsParams{
		EmployerID: sql.NullInt64{Int64: employerID, Valid: true},
		Limit:      recentActivityCount,
	})
	if err != nil {
		return nil, fmt.Errorf("listing recent time logs: %w", err)
	}

	sum := &EmployerSummary{
		ProjectsCount:    len(projects),
		EmployeesCount:   employees,
		TasksCount:       len(tasks),
		RecentActivities: make([]Activity, 0, len(recent)),
		ProjectWiseTime:  make(map[int64]int64, len(projects)),
		ProjectWiseCost:  make(map[int64]float64, len(projects)),
	}

	rates := make(map[int64]*float64, len(projects))
	for _, p := range projects {
		rates[p.ID] = rateOf(p.HourlyRate)
		sum.ProjectWiseTime[p.ID] = 0
		sum.ProjectWiseCost[p.ID] = 0
	}
	for _, t := range tasks {
		sum.TotalTime += t.SecondsSpent
		sum.ProjectWiseTime[t.ProjectID] += t.SecondsSpent
		if cost := TaskCost(t.SecondsSpent, rates[t.ProjectID]); cost != nil {
			sum.TotalCost += *cost
			sum.ProjectWiseCost[t.ProjectID] += *cost
		}
	}
	sum.TotalCost = roundCents(sum.TotalCost)
	for id, c := range sum.ProjectWiseCost {
		sum.ProjectWiseCost[id] = roundCents(c)
	}

	for _, l := range recent {
		sum.RecentActivities = append(sum.RecentActivities, Activity{
			ID:         l.ID,
			EmployeeID: l.EmployeeID,
			TaskID:     l.TaskID,
			ProjectID:  l.ProjectID,
			StartTime:  l.StartTime.UTC().Format(ActivityLayout),
			EndTime:    l.EndTime.UTC().Format(ActivityLayout),
			Duration:   l.Duration,
		})
	}
	return sum, nil
}

// EmployerDaySummary sums the durations of logs started from midnight seven
// days ago until now, keyed by UTC day.
func (s *TTService) EmployerDaySummary(ctx context.Context, employerID int64) (map[string]int64, error) {
	now := s.now()
	from := midnight(now.Add(-7 * 24 * time.Hour))
	logs, err := s.database.ListTimeLogs(ctx, sqlc.ListTimeLogsParams{
		EmployerID:  sql.NullInt64{Int64: employerID, Valid: true},
		StartFrom:   sql.NullTime{Time: from, Valid: true},
		StartBefore: sql.NullTime{Time: now.Add(time.Second), Valid: true},
		Limit:       -1,
	})
	if err != nil {
		return nil, fmt.Errorf("listing time logs: %w", err)
	}
	return BucketByDay(logs), nil
}

// ProjectSummary breaks an owned project down per task.
func (s *TTService) ProjectSummary(ctx context.Context, employerID, projectID int64) (*ProjectSummary, error) {
	project, err := s.ownedProject(ctx, employerID, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.database.ListTasksByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing project tasks: %w", err)
	}

	rate := rateOf(project.HourlyRate)
	sum := &ProjectSummary{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		HourlyRate:  rate,
		Tasks:       make([]TaskSummary, 0, len(tasks)),
	}
	for _, t := range tasks {
		sum.Tasks = append(sum.Tasks, TaskSummary{
			ID:           t.ID,
			Name:         t.Name,
			Status:       t.Status,
			TotalSeconds: t.SecondsSpent,
			TotalMinutes: Minutes(t.SecondsSpent),
			TotalHours:   Hours(t.SecondsSpent),
			TotalCost:    TaskCost(t.SecondsSpent, rate),
		})
		sum.TotalSeconds += t.SecondsSpent
	}
	sum.TotalHours = Hours(sum.TotalSeconds)
	sum.TotalCost = TaskCost(sum.TotalSeconds, rate)
	return sum, nil
}

// EmployerEmployees lists the employees on the employer's projects and
// tasks with their tracked time and cost there.
func (s *TTService) EmployerEmployees(ctx context.Context, employerID int64) ([]EmployeeWorkload, error) {
	employees, err := s.database.ListEmployeesByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}

	out := make([]EmployeeWorkload, 0, len(employees))
	for _, e := range employees {
		rows, err := s.database.ListEmployeeTasksForEmployer(ctx, e.ID, employerID)
		if err != nil {
			return nil, fmt.Errorf("listing tasks of employee %d: %w", e.ID, err)
		}
		w := EmployeeWorkload{
			ID:     e.ID,
			Name:   e.Name,
			Email:  e.Email,
			Active: e.Active,
			Tasks:  make([]WorkloadTask, 0, len(rows)),
		}
		if e.Username.Valid {
			u := e.Username.String
			w.Username = &u
		}
		for _, r := range rows {
			rate := rateOf(r.HourlyRate)
			w.TotalSeconds += r.SecondsSpent
			if cost := TaskCost(r.SecondsSpent, rate); cost != nil {
				w.TotalCost += *cost
			}
			w.Tasks = append(w.Tasks, WorkloadTask{
				ID:                r.ID,
				Name:              r.Name,
				Status:            r.Status,
				TotalSeconds:      r.SecondsSpent,
				ProjectID:         r.ProjectID,
				ProjectName:       r.ProjectName,
				ProjectHourlyRate: rate,
			})
		}
		w.TotalCost = roundCents(w.TotalCost)
		out = append(out, w)
	}
	return out, nil
}
