package tt_test

import (
	"context"
	"testing"

	"tt-go/internal/tt"
)

func TestProjects(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, rate(40))

	projects, err := w.env.Service.ListProjects(ctx, w.employerID)
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(projects) != 1 || projects[0].EmployeesCount != 1 || projects[0].TasksCount != 1 {
		t.Errorf("ListProjects() = %+v", projects)
	}

	detail, err := w.env.Service.GetProjectDetail(ctx, w.employerID, w.project.ID)
	if err != nil {
		t.Fatalf("GetProjectDetail() error = %v", err)
	}
	if len(detail.Employees) != 1 || len(detail.Tasks) != 1 {
		t.Errorf("detail has %d employees, %d tasks", len(detail.Employees), len(detail.Tasks))
	}

	updated, err := w.env.Service.UpdateProject(ctx, w.employerID, w.project.ID, tt.ProjectUpdate{ClearRate: true})
	if err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	if updated.HourlyRate.Valid || updated.Name != "Website" {
		t.Errorf("UpdateProject() = %+v, want rate cleared and name kept", updated)
	}

	_, err = w.env.Service.CreateProject(ctx, w.employerID, tt.ProjectInput{Name: "Bad", HourlyRate: rate(-1)})
	wantKind(t, err, tt.KindInvalid)
	_, err = w.env.Service.GetProjectDetail(ctx, w.employerID+1, w.project.ID)
	wantKind(t, err, tt.KindNotFound)

	w.logWork(t, 60, screenshot("png"))
	if err := w.env.Service.DeleteProject(ctx, w.employerID, w.project.ID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if w.env.Objects.Len() != 0 {
		t.Errorf("objects = %d, want 0", w.env.Objects.Len())
	}
	task, err := w.env.DB.FindTaskByID(ctx, w.task.ID)
	if err != nil {
		t.Fatalf("FindTaskByID() error = %v", err)
	}
	if task != nil {
		t.Error("task survived project deletion")
	}
}

func TestTasks(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)

	if w.task.Status != string(tt.TaskPending) {
		t.Errorf("default status = %q, want pending", w.task.Status)
	}
	_, err := w.env.Service.CreateTask(ctx, w.employerID, w.project.ID, tt.TaskInput{Name: "X", Status: "done"})
	wantKind(t, err, tt.KindInvalid)

	status := string(tt.TaskInProgress)
	updated, err := w.env.Service.UpdateTask(ctx, w.employerID, w.project.ID, w.task.ID, tt.TaskUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Status != status {
		t.Errorf("Status = %q, want %q", updated.Status, status)
	}

	tasks, err := w.env.Service.MyTasks(ctx, w.employee.ID)
	if err != nil {
		t.Fatalf("MyTasks() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len(MyTasks) = %d, want 1", len(tasks))
	}

	wantKind(t, w.env.Service.RemoveEmployeeFromTask(ctx, w.employerID+1, w.employee.ID, w.task.ID), tt.KindForbidden)
	if err := w.env.Service.RemoveEmployeeFromTask(ctx, w.employerID, w.employee.ID, w.task.ID); err != nil {
		t.Fatalf("RemoveEmployeeFromTask() error = %v", err)
	}
	wantKind(t, w.env.Service.RemoveEmployeeFromTask(ctx, w.employerID, w.employee.ID, w.task.ID), tt.KindNotFound)
	wantKind(t, w.env.Service.RemoveEmployeeFromTask(ctx, w.employerID, w.employee.ID, 999), tt.KindNotFound)
}

func TestEmployees_Admin(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)

	created, err := w.env.Service.CreateEmployee(ctx, tt.EmployeeInput{Name: "Grace", Email: "grace@example.com"})
	if err != nil {
		t.Fatalf("CreateEmployee() error = %v", err)
	}
	if created.Employee.Active || created.ActivationToken == "" {
		t.Errorf("CreateEmployee() = %+v, want pending with token", created)
	}

	active := true
	_, err = w.env.Service.UpdateEmployee(ctx, created.Employee.ID, tt.EmployeeUpdate{Active: &active})
	wantKind(t, err, tt.KindInvalid)

	email := "ada@example.com"
	_, err = w.env.Service.UpdateEmployee(ctx, created.Employee.ID, tt.EmployeeUpdate{Email: &email})
	wantKind(t, err, tt.KindConflict)

	withPassword, err := w.env.Service.CreateEmployee(ctx, tt.EmployeeInput{
		Name: "Linus", Email: "linus@example.com", Username: "linus", Password: "linus-pass",
	})
	if err != nil {
		t.Fatalf("CreateEmployee() error = %v", err)
	}
	if !withPassword.Employee.Active || withPassword.ActivationToken != "" {
		t.Errorf("CreateEmployee() = %+v, want active without token", withPassword)
	}

	all, err := w.env.Service.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(ListEmployees) = %d, want 3", len(all))
	}
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)
	w.logWork(t, 300, screenshot("png"))

	if err := w.env.Service.DeleteEmployee(ctx, w.employee.ID); err != nil {
		t.Fatalf("DeleteEmployee() error = %v", err)
	}
	if got := w.taskSeconds(t); got != 0 {
		t.Errorf("task seconds = %d, want 0", got)
	}
	if w.env.Objects.Len() != 0 {
		t.Errorf("objects = %d, want 0", w.env.Objects.Len())
	}
	_, err := w.env.Service.GetEmployee(ctx, w.employee.ID)
	wantKind(t, err, tt.KindNotFound)
	wantKind(t, w.env.Service.DeleteEmployee(ctx, w.employee.ID), tt.KindNotFound)
}

func TestEmployerProfile(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)

	site := "https://acme.test"
	empty := ""
	updated, err := w.env.Service.UpdateEmployerProfile(ctx, w.employerID, tt.EmployerProfileUpdate{Website: &site})
	if err != nil {
		t.Fatalf("UpdateEmployerProfile() error = %v", err)
	}
	if updated.Website.String != site || updated.CompanyName != "Acme" {
		t.Errorf("UpdateEmployerProfile() = %+v", updated)
	}

	_, err = w.env.Service.UpdateEmployerProfile(ctx, w.employerID, tt.EmployerProfileUpdate{CompanyName: &empty})
	wantKind(t, err, tt.KindInvalid)
	_, err = w.env.Service.GetEmployer(ctx, 999)
	wantKind(t, err, tt.KindNotFound)
}
