package api

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tt-go/internal/tt"
)

type timeLogRequest struct {
	ProjectID      int64  `json:"project_id"`
	TaskID         int64  `json:"task_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Duration       *int64 `json:"duration"`
	CapturedAt     string `json:"captured_at"`
	PermissionFlag *bool  `json:"permission_flag"`
}

// CreateTimeLog accepts either a JSON body or a multipart form whose
// "file" (or "image") part is the screenshot.
func (h *Handler) CreateTimeLog(c *gin.Context) {
	var (
		in  tt.NewTimeLog
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		in, err = h.readTimeLogForm(c)
	} else {
		var req timeLogRequest
		if berr := c.ShouldBindJSON(&req); berr != nil {
			h.badRequest(c, berr)
			return
		}
		in, err = req.toNewTimeLog()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "screenshot too large"})
			return
		}
		h.fail(c, err)
		return
	}
	in.IPAddress = c.ClientIP()
	if in.Screenshot != nil {
		if closer, ok := in.Screenshot.Body.(io.Closer); ok {
			defer closer.Close()
		}
	}

	log, err := h.svc.CreateTimeLog(c.Request.Context(), claimsFrom(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTimeLogView(log))
}

func (r timeLogRequest) toNewTimeLog() (tt.NewTimeLog, error) {
	in := tt.NewTimeLog{
		ProjectID:      r.ProjectID,
		TaskID:         r.TaskID,
		Duration:       r.Duration,
		PermissionFlag: r.PermissionFlag,
	}
	var err error
	if in.StartTime, err = parseTime("start_time", r.StartTime); err != nil {
		return in, err
	}
	if in.EndTime, err = parseTime("end_time", r.EndTime); err != nil {
		return in, err
	}
	if in.CapturedAt, err = parseOptionalTime("captured_at", r.CapturedAt); err != nil {
		return in, err
	}
	return in, nil
}

func (h *Handler) readTimeLogForm(c *gin.Context) (tt.NewTimeLog, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes+1<<20)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return tt.NewTimeLog{}, err
		}
		return tt.NewTimeLog{}, tt.Invalid("invalid multipart form")
	}
	value := func(name string) string {
		if vs := form.Value[name]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	req := timeLogRequest{
		StartTime:  value("start_time"),
		EndTime:    value("end_time"),
		CapturedAt: value("captured_at"),
	}
	for field, dst := range map[string]*int64{"project_id": &req.ProjectID, "task_id": &req.TaskID} {
		v, err := strconv.ParseInt(strings.TrimSpace(value(field)), 10, 64)
		if err != nil {
			return tt.NewTimeLog{}, tt.Invalid(field + " must be an integer")
		}
		*dst = v
	}
	if req.Duration, err = parseOptionalInt("duration", value("duration")); err != nil {
		return tt.NewTimeLog{}, err
	}
	if req.PermissionFlag, err = parseOptionalBool("permission_flag", value("permission_flag")); err != nil {
		return tt.NewTimeLog{}, err
	}
	in, err := req.toNewTimeLog()
	if err != nil {
		return in, err
	}

	header := firstFile(form, "file", "image")
	if header == nil {
		return in, nil
	}
	if header.Size > h.opts.MaxUploadBytes {
		return in, &http.MaxBytesError{Limit: h.opts.MaxUploadBytes}
	}
	f, err := header.Open()
	if err != nil {
		return in, tt.Invalid("unreadable screenshot")
	}
	in.Screenshot = &tt.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	}
	return in, nil
}

func firstFile(form *multipart.Form, names ...string) *multipart.FileHeader {
	for _, name := range names {
		if fs := form.File[name]; len(fs) > 0 {
			return fs[0]
		}
	}
	return nil
}

func (h *Handler) ListTimeLogs(c *gin.Context) {
	var (
		f   tt.TimeLogFilter
		err error
	)
	if f.ProjectID, err = parseOptionalInt("project_id", c.Query("project_id")); err != nil {
		h.fail(c, err)
		return
	}
	if f.TaskID, err = parseOptionalInt("task_id", c.Query("task_id")); err != nil {
		h.fail(c, err)
		return
	}
	if f.From, err = parseOptionalTime("from", c.Query("from")); err != nil {
		h.fail(c, err)
		return
	}
	if f.To, err = parseOptionalTime("to", c.Query("to")); err != nil {
		h.fail(c, err)
		return
	}
	limit, err := parseOptionalInt("limit", c.Query("limit"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if limit != nil {
		f.Limit = int(*limit)
	}

	logs, err := h.svc.ListTimeLogs(c.Request.Context(), claimsFrom(c), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTimeLogViews(logs))
}

func (h *Handler) GetTimeLog(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	log, err := h.svc.GetTimeLog(c.Request.Context(), claimsFrom(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTimeLogView(log))
}

// GetScreenshot returns the stored screenshot bytes. They are buffered so
// a failed download still gets an error status.
func (h *Handler) GetScreenshot(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := h.svc.Screenshot(c.Request.Context(), claimsFrom(c), id, &buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", buf.Bytes())
}

func (h *Handler) DeleteTimeLog(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.DeleteTimeLog(c.Request.Context(), claimsFrom(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time log deleted successfully"})
}
