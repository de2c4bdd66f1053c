package tt_test

import (
	"context"
	"testing"
	"time"

	"tt-go/internal/tt"
)

func TestProjectSummary(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, rate(20))
	w.logWork(t, 3600, nil)

	sum, err := w.env.Service.ProjectSummary(ctx, w.employerID, w.project.ID)
	if err != nil {
		t.Fatalf("ProjectSummary() error = %v", err)
	}
	if len(sum.Tasks) != 1 {
		t.Fatalf("len(Tasks) = %d, want 1", len(sum.Tasks))
	}
	task := sum.Tasks[0]
	if task.TotalSeconds != 3600 || task.TotalMinutes != 60 || task.TotalHours != 1 {
		t.Errorf("task totals = %+v", task)
	}
	if task.TotalCost == nil || *task.TotalCost != 20 {
		t.Errorf("task TotalCost = %v, want 20", task.TotalCost)
	}
	if sum.TotalHours != 1 || sum.TotalCost == nil || *sum.TotalCost != 20 {
		t.Errorf("project totals = %v h, %v", sum.TotalHours, sum.TotalCost)
	}

	_, err = w.env.Service.ProjectSummary(ctx, w.employerID+100, w.project.ID)
	wantKind(t, err, tt.KindNotFound)
}

func TestProjectSummary_Unpriced(t *testing.T) {
	w := newWorld(t, nil)
	w.logWork(t, 1800, nil)

	sum, err := w.env.Service.ProjectSummary(context.Background(), w.employerID, w.project.ID)
	if err != nil {
		t.Fatalf("ProjectSummary() error = %v", err)
	}
	if sum.TotalCost != nil || sum.Tasks[0].TotalCost != nil {
		t.Errorf("costs = %v / %v, want nil", sum.TotalCost, sum.Tasks[0].TotalCost)
	}
	if sum.TotalHours != 0.5 {
		t.Errorf("TotalHours = %v, want 0.5", sum.TotalHours)
	}
}

func TestEmployerSummary(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, rate(50))
	for i := 0; i < 6; i++ {
		w.logWork(t, 1200, nil)
		w.env.Clock.Advance(time.Hour)
	}
	unpriced, err := w.env.Service.CreateProject(ctx, w.employerID, tt.ProjectInput{Name: "Internal"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	sum, err := w.env.Service.EmployerSummary(ctx, w.employerID)
	if err != nil {
		t.Fatalf("EmployerSummary() error = %v", err)
	}
	if sum.ProjectsCount != 2 || sum.TasksCount != 1 || sum.EmployeesCount != 1 {
		t.Errorf("counts = %d projects, %d tasks, %d employees", sum.ProjectsCount, sum.TasksCount, sum.EmployeesCount)
	}
	if sum.TotalTime != 7200 {
		t.Errorf("TotalTime = %d, want 7200", sum.TotalTime)
	}
	if sum.TotalCost != 100 {
		t.Errorf("TotalCost = %v, want 100", sum.TotalCost)
	}
	if sum.ProjectWiseTime[w.project.ID] != 7200 || sum.ProjectWiseCost[w.project.ID] != 100 {
		t.Errorf("project-wise = %v / %v", sum.ProjectWiseTime, sum.ProjectWiseCost)
	}
	if v, ok := sum.ProjectWiseTime[unpriced.ID]; !ok || v != 0 {
		t.Errorf("unpriced project time = %d, %v", v, ok)
	}
	if len(sum.RecentActivities) != 5 {
		t.Fatalf("len(RecentActivities) = %d, want 5", len(sum.RecentActivities))
	}
	first, last := sum.RecentActivities[0].StartTime, sum.RecentActivities[4].StartTime
	if first <= last {
		t.Errorf("activities not newest first: %s then %s", first, last)
	}
}

func TestEmployerDaySummary(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)
	now := w.env.Clock.Now()

	add := func(start time.Time, seconds int64) {
		t.Helper()
		_, err := w.env.Service.CreateTimeLog(ctx, w.employee, tt.NewTimeLog{
			ProjectID: w.project.ID,
			TaskID:    w.task.ID,
			StartTime: start,
			EndTime:   start.Add(time.Duration(seconds) * time.Second),
		})
		if err != nil {
			t.Fatalf("CreateTimeLog() error = %v", err)
		}
	}
	yesterday := now.Add(-24 * time.Hour)
	add(yesterday, 600)
	add(yesterday.Add(2*time.Hour), 300)
	add(now.Add(-time.Hour), 60)
	add(now.Add(-10*24*time.Hour), 999)
	add(now.Add(2*time.Hour), 10)

	got, err := w.env.Service.EmployerDaySummary(ctx, w.employerID)
	if err != nil {
		t.Fatalf("EmployerDaySummary() error = %v", err)
	}
	want := map[string]int64{
		tt.DayKey(yesterday): 900,
		tt.DayKey(now):       60,
	}
	if len(got) != len(want) {
		t.Fatalf("EmployerDaySummary() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("bucket %s = %d, want %d", k, got[k], v)
		}
	}
}

func TestEmployerEmployees(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, rate(30))
	w.logWork(t, 7200, nil)

	got, err := w.env.Service.EmployerEmployees(ctx, w.employerID)
	if err != nil {
		t.Fatalf("EmployerEmployees() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(EmployerEmployees) = %d, want 1", len(got))
	}
	e := got[0]
	if e.ID != w.employee.ID || e.Username == nil || *e.Username != "ada" {
		t.Errorf("employee = %+v", e)
	}
	if e.TotalSeconds != 7200 || e.TotalCost != 60 {
		t.Errorf("totals = %d s, %v", e.TotalSeconds, e.TotalCost)
	}
	if len(e.Tasks) != 1 || e.Tasks[0].ProjectName != "Website" {
		t.Errorf("tasks = %+v", e.Tasks)
	}
}
