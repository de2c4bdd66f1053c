package tt_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tt-go/internal/database/sqlc"
	"tt-go/internal/testutil"
	"tt-go/internal/tt"
)

const (
	employerPassword = "employer-pass"
	employeePassword = "employee-pass"
	adminPassword    = "admin-pass-1"
	deviceMAC        = "aa:bb:cc:dd:ee:01"
)

// world is one employer with a priced project and task, and one employee
// assigned to the task and logged in from deviceMAC.
type world struct {
	env        *testutil.Env
	employerID int64
	employer   *tt.Claims
	employee   *tt.Claims
	project    *sqlc.Project
	task       *sqlc.Task
}

func newWorld(t *testing.T, rate *float64) *world {
	t.Helper()
	ctx := context.Background()
	env := testutil.NewTestService(t)
	w := &world{env: env}

	employer, err := env.Service.RegisterEmployer(ctx, tt.EmployerRegistration{
		CompanyName: "Acme",
		Email:       "boss@acme.test",
		Password:    employerPassword,
	})
	if err != nil {
		t.Fatalf("RegisterEmployer() error = %v", err)
	}
	w.employerID = employer.ID
	w.employer = login(t, env, func() (*tt.Session, error) {
		return env.Service.LoginEmployer(ctx, "boss@acme.test", employerPassword)
	})

	w.project, err = env.Service.CreateProject(ctx, employer.ID, tt.ProjectInput{Name: "Website", HourlyRate: rate})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	w.task, err = env.Service.CreateTask(ctx, employer.ID, w.project.ID, tt.TaskInput{Name: "Landing page"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	employee, err := env.Service.RegisterEmployee(ctx, tt.EmployeeRegistration{
		Name:     "Ada",
		Email:    "ada@example.com",
		Username: "ada",
		Password: employeePassword,
	})
	if err != nil {
		t.Fatalf("RegisterEmployee() error = %v", err)
	}
	if err := env.Service.AssignEmployeeToTask(ctx, employer.ID, w.project.ID, w.task.ID, employee.ID); err != nil {
		t.Fatalf("AssignEmployeeToTask() error = %v", err)
	}
	w.employee = login(t, env, func() (*tt.Session, error) {
		return env.Service.LoginEmployee(ctx, "ada", employeePassword, deviceMAC)
	})
	return w
}

func login(t *testing.T, env *testutil.Env, fn func() (*tt.Session, error)) *tt.Claims {
	t.Helper()
	session, err := fn()
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	claims, err := env.Service.Authenticate(session.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	return claims
}

func (w *world) admin(t *testing.T) *tt.Claims {
	t.Helper()
	ctx := context.Background()
	if _, err := w.env.Service.CreateAdmin(ctx, testutil.AdminEmail, adminPassword); err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}
	return login(t, w.env, func() (*tt.Session, error) {
		return w.env.Service.LoginAdmin(ctx, testutil.AdminEmail, adminPassword)
	})
}

// logWork records seconds of work ending at the current clock time.
func (w *world) logWork(t *testing.T, seconds int64, shot *tt.Upload) *sqlc.TimeLog {
	t.Helper()
	end := w.env.Clock.Now()
	log, err := w.env.Service.CreateTimeLog(context.Background(), w.employee, tt.NewTimeLog{
		ProjectID:  w.project.ID,
		TaskID:     w.task.ID,
		StartTime:  end.Add(-time.Duration(seconds) * time.Second),
		EndTime:    end,
		Screenshot: shot,
	})
	if err != nil {
		t.Fatalf("CreateTimeLog() error = %v", err)
	}
	return log
}

func (w *world) taskSeconds(t *testing.T) int64 {
	t.Helper()
	task, err := w.env.DB.FindTaskByID(context.Background(), w.task.ID)
	if err != nil || task == nil {
		t.Fatalf("FindTaskByID() = %v, %v", task, err)
	}
	return task.SecondsSpent
}

func wantKind(t *testing.T, err error, want tt.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want %s", want)
	}
	if got := tt.KindOf(err); got != want {
		t.Fatalf("error kind = %s, want %s (error: %v)", got, want, err)
	}
}

func wantReLogin(t *testing.T, err error) {
	t.Helper()
	var e *tt.Error
	if !errors.As(err, &e) || e.Kind != tt.KindUnauthenticated || e.Code != tt.CodeReLogin {
		t.Fatalf("error = %v, want re-login", err)
	}
}

func rate(v float64) *float64 { return &v }
