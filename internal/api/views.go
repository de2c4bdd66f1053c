package api

import (
	"database/sql"
	"time"

	"tt-go/internal/database/sqlc"
	"tt-go/internal/tt"
)

type employerView struct {
	ID              int64     `json:"id"`
	CompanyName     string    `json:"company_name"`
	ContactName     *string   `json:"contact_name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone"`
	Active          bool      `json:"active"`
	ProfileImageURL *string   `json:"profile_image_url"`
	Address         *string   `json:"address"`
	Website         *string   `json:"website"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type employeeView struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Username        *string   `json:"username"`
	Active          bool      `json:"active"`
	ProfileImageURL *string   `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type projectView struct {
	ID             int64     `json:"id"`
	EmployerID     int64     `json:"employer_id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	HourlyRate     *float64  `json:"hourly_rate"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	EmployeesCount *int64    `json:"employees_count,omitempty"`
	TasksCount     *int64    `json:"tasks_count,omitempty"`
}

type projectDetailView struct {
	projectView
	Employees []employeeView `json:"employees"`
	Tasks     []taskView     `json:"tasks"`
}

type taskView struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"project_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Status       string    `json:"status"`
	TotalSeconds int64     `json:"total_seconds"`
	TotalMinutes int64     `json:"total_minutes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type timeLogView struct {
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employee_id"`
	ProjectID      int64      `json:"project_id"`
	TaskID         int64      `json:"task_id"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	Duration       int64      `json:"duration"`
	ImageURL       *string    `json:"image_url"`
	CapturedAt     *time.Time `json:"captured_at"`
	IPAddress      *string    `json:"ip_address"`
	MACAddress     *string    `json:"mac_address"`
	PermissionFlag *bool      `json:"permission_flag"`
	CreatedAt      time.Time  `json:"created_at"`
}

func optString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func optFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}

func newEmployerView(e *sqlc.Employer) employerView {
	return employerView{
		ID:              e.ID,
		CompanyName:     e.CompanyName,
		ContactName:     optString(e.ContactName),
		Email:           e.Email,
		Phone:           optString(e.Phone),
		Active:          e.Active,
		ProfileImageURL: optString(e.ProfileImageUrl),
		Address:         optString(e.Address),
		Website:         optString(e.Website),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func newEmployeeView(e *sqlc.Employee) employeeView {
	return employeeView{
		ID:              e.ID,
		Name:            e.Name,
		Email:           e.Email,
		Username:        optString(e.Username),
		Active:          e.Active,
		ProfileImageURL: optString(e.ProfileImageUrl),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func newEmployeeViews(es []sqlc.Employee) []employeeView {
	out := make([]employeeView, 0, len(es))
	for i := range es {
		out = append(out, newEmployeeView(&es[i]))
	}
	return out
}

func newProjectView(p *sqlc.Project) projectView {
	return projectView{
		ID:          p.ID,
		EmployerID:  p.EmployerID,
		Name:        p.Name,
		Description: optString(p.Description),
		HourlyRate:  optFloat(p.HourlyRate),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProjectViews(ps []sqlc.Project) []projectView {
	out := make([]projectView, 0, len(ps))
	for i := range ps {
		out = append(out, newProjectView(&ps[i]))
	}
	return out
}

func newProjectRowViews(rows []sqlc.ListProjectsByEmployerRow) []projectView {
	out := make([]projectView, 0, len(rows))
	for _, r := range rows {
		v := newProjectView(&sqlc.Project{
			ID:          r.ID,
			EmployerID:  r.EmployerID,
			Name:        r.Name,
			Description: r.Description,
			HourlyRate:  r.HourlyRate,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
		employees, tasks := r.EmployeesCount, r.TasksCount
		v.EmployeesCount = &employees
		v.TasksCount = &tasks
		out = append(out, v)
	}
	return out
}

func newProjectDetailView(d *tt.ProjectDetail) projectDetailView {
	return projectDetailView{
		projectView: newProjectView(&d.Project),
		Employees:   newEmployeeViews(d.Employees),
		Tasks:       newTaskViews(d.Tasks),
	}
}

func newTaskView(t *sqlc.Task) taskView {
	return taskView{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		Name:         t.Name,
		Description:  optString(t.Description),
		Status:       t.Status,
		TotalSeconds: t.SecondsSpent,
		TotalMinutes: tt.Minutes(t.SecondsSpent),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func newTaskViews(ts []sqlc.Task) []taskView {
	out := make([]taskView, 0, len(ts))
	for i := range ts {
		out = append(out, newTaskView(&ts[i]))
	}
	return out
}

func newTimeLogView(l *sqlc.TimeLog) timeLogView {
	v := timeLogView{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		ProjectID:  l.ProjectID,
		TaskID:     l.TaskID,
		StartTime:  l.StartTime.UTC(),
		EndTime:    l.EndTime.UTC(),
		Duration:   l.Duration,
		ImageURL:   optString(l.ImageUrl),
		IPAddress:  optString(l.IpAddress),
		MACAddress: optString(l.MacAddress),
		CreatedAt:  l.CreatedAt.UTC(),
	}
	if l.CapturedAt.Valid {
		t := l.CapturedAt.Time.UTC()
		v.CapturedAt = &t
	}
	if l.PermissionFlag.Valid {
		b := l.PermissionFlag.Bool
		v.PermissionFlag = &b
	}
	return v
}

func newTimeLogViews(ls []sqlc.TimeLog) []timeLogView {
	out := make([]timeLogView, 0, len(ls))
	for i := range ls {
		out = append(out, newTimeLogView(&ls[i]))
	}
	return out
}
