package tt

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"tt-go/internal/database/sqlc"
)

// Upload is a file attached to a request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// NewTimeLog is one interval of work reported by an employee. A nil
// Duration is derived from the interval.
type NewTimeLog struct {
	ProjectID      int64
	TaskID         int64
	StartTime      time.Time
	EndTime        time.Time
	Duration       *int64
	CapturedAt     *time.Time
	IPAddress      string
	PermissionFlag *bool
	Screenshot     *Upload
}

// TimeLogFilter narrows ListTimeLogs. Limit <= 0 means no limit.
type TimeLogFilter struct {
	ProjectID *int64
	TaskID    *int64
	From      *time.Time
	To        *time.Time
	Limit     int
}

// CreateTimeLog records work for the calling employee. The screenshot, if
// any, is uploaded before the row is written; if the write fails the upload
// is removed again.
func (s *TTService) CreateTimeLog(ctx context.Context, c *Claims, in NewTimeLog) (*sqlc.TimeLog, error) {
	if c == nil || c.Role != RoleEmployee {
		return nil, Forbidden("only employees can record time")
	}
	if in.TaskID <= 0 || in.ProjectID <= 0 {
		return nil, Invalid("task_id and project_id are required")
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, Invalid("start_time and end_time are required")
	}
	start := in.StartTime.UTC().Truncate(time.Second)
	end := in.EndTime.UTC().Truncate(time.Second)
	if end.Before(start) {
		return nil, Invalid("end_time must not be before start_time")
	}
	duration := int64(end.Sub(start) / time.Second)
	if in.Duration != nil {
		duration = *in.Duration
	}
	if duration < 0 {
		return nil, Invalid("duration must not be negative")
	}

	task, err := s.database.FindTaskByID(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("finding task: %w", err)
	}
	if task == nil {
		return nil, NotFound("task not found")
	}
	if task.ProjectID != in.ProjectID {
		return nil, Invalid("task does not belong to the given project")
	}

	params := sqlc.CreateTimeLogParams{
		EmployeeID: c.ID,
		ProjectID:  task.ProjectID,
		TaskID:     task.ID,
		StartTime:  start,
		EndTime:    end,
		Duration:   duration,
		IpAddress:  nullString(in.IPAddress),
		MacAddress: nullString(c.MACAddress),
		CreatedAt:  s.now(),
	}
	if in.CapturedAt != nil {
		params.CapturedAt = sql.NullTime{Time: in.CapturedAt.UTC().Truncate(time.Second), Valid: true}
	}
	if in.PermissionFlag != nil {
		params.PermissionFlag = sql.NullBool{Bool: *in.PermissionFlag, Valid: true}
	}

	var key string
	if in.Screenshot != nil {
		key = s.screenshotKey(c.ID, in.Screenshot.Filename)
		contentType := in.Screenshot.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		url, err := s.store.Upload(ctx, s.opts.ScreenshotContainer, key, in.Screenshot.Body, in.Screenshot.Size, contentType)
		if err != nil {
			return nil, External("uploading screenshot failed", err)
		}
		params.ImageUrl = sql.NullString{String: url, Valid: true}
		params.ImageKey = sql.NullString{String: key, Valid: true}
	}

	log, err := s.database.CreateTimeLog(ctx, params)
	if err != nil {
		if key != "" {
			if derr := s.store.Delete(ctx, s.opts.ScreenshotContainer, key); derr != nil {
				s.logger.Error("removing orphaned screenshot", "key", key, "error", derr)
			}
		}
		return nil, fmt.Errorf("saving time log: %w", err)
	}

	s.logger.Info("time logged", "employee_id", c.ID, "task_id", task.ID, "duration", duration, "screenshot", key != "")
	return log, nil
}

// ListTimeLogs returns the logs visible to the caller, newest first.
// Employees see their own logs, employers the logs on their projects and
// admins everything.
func (s *TTService) ListTimeLogs(ctx context.Context, c *Claims, f TimeLogFilter) ([]sqlc.TimeLog, error) {
	params := sqlc.ListTimeLogsParams{Limit: int64(f.Limit)}
	if f.Limit <= 0 {
		params.Limit = -1
	}
	switch c.Role {
	case RoleEmployee:
		params.EmployeeID = sql.NullInt64{Int64: c.ID, Valid: true}
	case RoleEmployer:
		params.EmployerID = sql.NullInt64{Int64: c.ID, Valid: true}
	case RoleAdmin:
	default:
		return nil, Forbidden("unknown role")
	}
	if f.ProjectID != nil {
		params.ProjectID = sql.NullInt64{Int64: *f.ProjectID, Valid: true}
	}
	if f.TaskID != nil {
		params.TaskID = sql.NullInt64{Int64: *f.TaskID, Valid: true}
	}
	if f.From != nil {
		params.StartFrom = sql.NullTime{Time: f.From.UTC().Truncate(time.Second), Valid: true}
	}
	if f.To != nil {
		params.StartBefore = sql.NullTime{Time: f.To.UTC().Truncate(time.Second), Valid: true}
	}

	logs, err := s.database.ListTimeLogs(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("listing time logs: %w", err)
	}
	return logs, nil
}

// GetTimeLog returns one log if the caller may see it.
func (s *TTService) GetTimeLog(ctx context.Context, c *Claims, id int64) (*sqlc.TimeLog, error) {
	log, err := s.database.FindTimeLogByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding time log: %w", err)
	}
	if log == nil {
		return nil, NotFound("time log not found")
	}
	visible, err := s.canSeeTimeLog(ctx, c, log)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, NotFound("time log not found")
	}
	return log, nil
}

// DeleteTimeLog removes a log, takes its duration back off the task and
// deletes its screenshot. Admins and the owning employer may delete.
func (s *TTService) DeleteTimeLog(ctx context.Context, c *Claims, id int64) error {
	if err := Authorize(c, RoleAdmin, RoleEmployer); err != nil {
		return err
	}
	if _, err := s.GetTimeLog(ctx, c, id); err != nil {
		return err
	}

	deleted, err := s.database.DeleteTimeLog(ctx, id, s.now())
	if err != nil {
		return fmt.Errorf("deleting time log: %w", err)
	}
	if deleted == nil {
		return NotFound("time log not found")
	}
	s.purgeScreenshots(ctx, []sqlc.TimeLog{*deleted})
	s.logger.Info("time log deleted", "time_log_id", id, "task_id", deleted.TaskID, "duration", deleted.Duration)
	return nil
}

// Screenshot streams a log's screenshot bytes, as stored, to w.
func (s *TTService) Screenshot(ctx context.Context, c *Claims, id int64, w io.Writer) error {
	log, err := s.GetTimeLog(ctx, c, id)
	if err != nil {
		return err
	}
	if !log.ImageKey.Valid {
		return NotFound("time log has no screenshot")
	}
	if err := s.store.Download(ctx, s.opts.ScreenshotContainer, log.ImageKey.String, w); err != nil {
		return External("downloading screenshot failed", err)
	}
	return nil
}

func (s *TTService) canSeeTimeLog(ctx context.Context, c *Claims, log *sqlc.TimeLog) (bool, error) {
	switch c.Role {
	case RoleAdmin:
		return true, nil
	case RoleEmployee:
		return log.EmployeeID == c.ID, nil
	case RoleEmployer:
		project, err := s.database.FindProjectByID(ctx, log.ProjectID)
		if err != nil {
			return false, fmt.Errorf("finding project: %w", err)
		}
		return project != nil && project.EmployerID == c.ID, nil
	}
	return false, nil
}

func (s *TTService) screenshotKey(employeeID int64, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 8 {
		ext = ""
	}
	return fmt.Sprintf("%d/%s%s", employeeID, s.idgen.New(), ext)
}

// purgeScreenshots deletes the objects behind already-deleted logs. Failures
// are logged; the rows are gone either way.
func (s *TTService) purgeScreenshots(ctx context.Context, logs []sqlc.TimeLog) {
	for _, l := range logs {
		if !l.ImageKey.Valid {
			continue
		}
		if err := s.store.Delete(ctx, s.opts.ScreenshotContainer, l.ImageKey.String); err != nil {
			s.logger.Warn("deleting screenshot", "key", l.ImageKey.String, "error", err)
		}
	}
}
