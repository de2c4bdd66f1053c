package tt_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"tt-go/internal/tt"
)

func screenshot(data string) *tt.Upload {
	return &tt.Upload{
		Filename:    "Capture.PNG",
		ContentType: "image/png",
		Size:        int64(len(data)),
		Body:        strings.NewReader(data),
	}
}

func TestCreateTimeLog_IncrementsCounter(t *testing.T) {
	w := newWorld(t, rate(20))

	first := w.logWork(t, 3600, nil)
	if first.Duration != 3600 {
		t.Errorf("Duration = %d, want 3600", first.Duration)
	}
	if first.MacAddress.String != deviceMAC {
		t.Errorf("MacAddress = %q, want %q", first.MacAddress.String, deviceMAC)
	}
	if got := w.taskSeconds(t); got != 3600 {
		t.Fatalf("task seconds = %d, want 3600", got)
	}

	w.logWork(t, 90, nil)
	if got := w.taskSeconds(t); got != 3690 {
		t.Errorf("task seconds = %d, want 3690", got)
	}
}

func TestCreateTimeLog_ExplicitDuration(t *testing.T) {
	w := newWorld(t, nil)
	now := w.env.Clock.Now()
	d := int64(1200)

	log, err := w.env.Service.CreateTimeLog(context.Background(), w.employee, tt.NewTimeLog{
		ProjectID: w.project.ID,
		TaskID:    w.task.ID,
		StartTime: now.Add(-time.Hour),
		EndTime:   now,
		Duration:  &d,
	})
	if err != nil {
		t.Fatalf("CreateTimeLog() error = %v", err)
	}
	if log.Duration != 1200 {
		t.Errorf("Duration = %d, want 1200", log.Duration)
	}
	if got := w.taskSeconds(t); got != 1200 {
		t.Errorf("task seconds = %d, want 1200", got)
	}
}

func TestCreateTimeLog_Screenshot(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)

	log := w.logWork(t, 60, screenshot("png-bytes"))
	if !log.ImageKey.Valid || !log.ImageUrl.Valid {
		t.Fatalf("image fields not set: %+v", log)
	}
	key := log.ImageKey.String
	if !strings.HasPrefix(key, fmt.Sprintf("%d/", w.employee.ID)) || !strings.HasSuffix(key, ".png") {
		t.Errorf("ImageKey = %q, want <employee>/<id>.png", key)
	}
	if !w.env.Objects.Has("screenshots", key) {
		t.Fatalf("object %s not stored", key)
	}

	var buf bytes.Buffer
	if err := w.env.Service.Screenshot(ctx, w.employer, log.ID, &buf); err != nil {
		t.Fatalf("Screenshot() error = %v", err)
	}
	if buf.String() != "png-bytes" {
		t.Errorf("Screenshot() = %q, want %q", buf.String(), "png-bytes")
	}

	plain := w.logWork(t, 60, nil)
	wantKind(t, w.env.Service.Screenshot(ctx, w.employer, plain.ID, &buf), tt.KindNotFound)
}

func TestCreateTimeLog_UploadFailure(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)
	w.env.Store.FailUpload = true

	now := w.env.Clock.Now()
	_, err := w.env.Service.CreateTimeLog(ctx, w.employee, tt.NewTimeLog{
		ProjectID:  w.project.ID,
		TaskID:     w.task.ID,
		StartTime:  now.Add(-time.Minute),
		EndTime:    now,
		Screenshot: screenshot("png"),
	})
	wantKind(t, err, tt.KindExternal)

	logs, err := w.env.Service.ListTimeLogs(ctx, w.employee, tt.TimeLogFilter{})
	if err != nil {
		t.Fatalf("ListTimeLogs() error = %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("len(logs) = %d, want 0", len(logs))
	}
	if got := w.taskSeconds(t); got != 0 {
		t.Errorf("task seconds = %d, want 0", got)
	}
	if w.env.Objects.Len() != 0 {
		t.Errorf("objects = %d, want 0", w.env.Objects.Len())
	}
}

func TestCreateTimeLog_Validation(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)
	now := w.env.Clock.Now()

	other, err := w.env.Service.CreateProject(ctx, w.employerID, tt.ProjectInput{Name: "Other"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	otherTask, err := w.env.Service.CreateTask(ctx, w.employerID, other.ID, tt.TaskInput{Name: "Elsewhere"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	negative := int64(-5)

	tests := []struct {
		name   string
		claims *tt.Claims
		in     tt.NewTimeLog
		want   tt.Kind
	}{
		{
			name:   "employer cannot log",
			claims: w.employer,
			in:     tt.NewTimeLog{ProjectID: w.project.ID, TaskID: w.task.ID, StartTime: now.Add(-time.Minute), EndTime: now},
			want:   tt.KindForbidden,
		},
		{
			name:   "task of another project",
			claims: w.employee,
			in:     tt.NewTimeLog{ProjectID: w.project.ID, TaskID: otherTask.ID, StartTime: now.Add(-time.Minute), EndTime: now},
			want:   tt.KindInvalid,
		},
		{
			name:   "unknown task",
			claims: w.employee,
			in:     tt.NewTimeLog{ProjectID: w.project.ID, TaskID: 999, StartTime: now.Add(-time.Minute), EndTime: now},
			want:   tt.KindNotFound,
		},
		{
			name:   "end before start",
			claims: w.employee,
			in:     tt.NewTimeLog{ProjectID: w.project.ID, TaskID: w.task.ID, StartTime: now, EndTime: now.Add(-time.Minute)},
			want:   tt.KindInvalid,
		},
		{
			name:   "negative duration",
			claims: w.employee,
			in:     tt.NewTimeLog{ProjectID: w.project.ID, TaskID: w.task.ID, StartTime: now.Add(-time.Minute), EndTime: now, Duration: &negative},
			want:   tt.KindInvalid,
		},
		{
			name:   "missing task",
			claims: w.employee,
			in:     tt.NewTimeLog{ProjectID: w.project.ID, StartTime: now.Add(-time.Minute), EndTime: now},
			want:   tt.KindInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := w.env.Service.CreateTimeLog(ctx, tc.claims, tc.in)
			wantKind(t, err, tc.want)
		})
	}
	if got := w.taskSeconds(t); got != 0 {
		t.Errorf("task seconds = %d, want 0", got)
	}
}

func TestListTimeLogs_Visibility(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)
	w.logWork(t, 60, nil)
	w.env.Clock.Advance(time.Hour)
	latest := w.logWork(t, 120, nil)

	stranger, err := w.env.Service.RegisterEmployer(ctx, tt.EmployerRegistration{
		CompanyName: "Globex", Email: "hank@globex.test", Password: employerPassword,
	})
	if err != nil {
		t.Fatalf("RegisterEmployer() error = %v", err)
	}
	strangerClaims := &tt.Claims{ID: stranger.ID, Role: tt.RoleEmployer}

	tests := []struct {
		name   string
		claims *tt.Claims
		filter tt.TimeLogFilter
		want   int
	}{
		{name: "employee sees own", claims: w.employee, want: 2},
		{name: "employer sees project", claims: w.employer, want: 2},
		{name: "admin sees all", claims: &tt.Claims{ID: 1, Role: tt.RoleAdmin}, want: 2},
		{name: "other employer sees none", claims: strangerClaims, want: 0},
		{name: "limit", claims: w.employer, filter: tt.TimeLogFilter{Limit: 1}, want: 1},
		{name: "task filter", claims: w.employer, filter: tt.TimeLogFilter{TaskID: &w.task.ID}, want: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logs, err := w.env.Service.ListTimeLogs(ctx, tc.claims, tc.filter)
			if err != nil {
				t.Fatalf("ListTimeLogs() error = %v", err)
			}
			if len(logs) != tc.want {
				t.Fatalf("len(logs) = %d, want %d", len(logs), tc.want)
			}
			if tc.want > 0 && logs[0].ID != latest.ID {
				t.Errorf("first log = %d, want newest %d", logs[0].ID, latest.ID)
			}
		})
	}

	_, err = w.env.Service.GetTimeLog(ctx, strangerClaims, latest.ID)
	wantKind(t, err, tt.KindNotFound)
}

func TestDeleteTimeLog(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)
	keep := w.logWork(t, 100, nil)
	gone := w.logWork(t, 50, screenshot("png"))

	wantKind(t, w.env.Service.DeleteTimeLog(ctx, w.employee, gone.ID), tt.KindForbidden)

	if err := w.env.Service.DeleteTimeLog(ctx, w.employer, gone.ID); err != nil {
		t.Fatalf("DeleteTimeLog() error = %v", err)
	}
	if got := w.taskSeconds(t); got != keep.Duration {
		t.Errorf("task seconds = %d, want %d", got, keep.Duration)
	}
	if w.env.Objects.Len() != 0 {
		t.Errorf("objects = %d, want screenshot removed", w.env.Objects.Len())
	}
	wantKind(t, w.env.Service.DeleteTimeLog(ctx, w.employer, gone.ID), tt.KindNotFound)
}

func TestDeleteTask_PurgesScreenshots(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t, nil)
	w.logWork(t, 60, screenshot("one"))
	w.logWork(t, 60, screenshot("two"))
	if w.env.Objects.Len() != 2 {
		t.Fatalf("objects = %d, want 2", w.env.Objects.Len())
	}

	if err := w.env.Service.DeleteTask(ctx, w.employerID, w.project.ID, w.task.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if w.env.Objects.Len() != 0 {
		t.Errorf("objects = %d, want 0", w.env.Objects.Len())
	}
	logs, err := w.env.Service.ListTimeLogs(ctx, w.employer, tt.TimeLogFilter{})
	if err != nil {
		t.Fatalf("ListTimeLogs() error = %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("len(logs) = %d, want 0", len(logs))
	}
}
