package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tt-go/internal/tt"
)

type profileRequest struct {
	CompanyName     *string `json:"company_name"`
	ContactName     *string `json:"contact_name"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Website         *string `json:"website"`
	ProfileImageURL *string `json:"profile_image_url"`
}

type projectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

type projectUpdateRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	HourlyRate  optionalFloat `json:"hourly_rate"`
}

type assignRequest struct {
	EmployeeID int64 `json:"employee_id" binding:"required"`
}

type taskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type taskUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *Handler) GetEmployerProfile(c *gin.Context) {
	employer, err := h.svc.GetEmployer(c.Request.Context(), claimsFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newEmployerView(employer))
}

func (h *Handler) UpdateEmployerProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	employer, err := h.svc.UpdateEmployerProfile(c.Request.Context(), claimsFrom(c).ID, tt.EmployerProfileUpdate{
		CompanyName:     req.CompanyName,
		ContactName:     req.ContactName,
		Phone:           req.Phone,
		Address:         req.Address,
		Website:         req.Website,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newEmployerView(employer))
}

func (h *Handler) ListProjects(c *gin.Context) {
	rows, err := h.svc.ListProjects(c.Request.Context(), claimsFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectRowViews(rows))
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	project, err := h.svc.CreateProject(c.Request.Context(), claimsFrom(c).ID, tt.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newProjectView(project))
}

func (h *Handler) GetProject(c *gin.Context) {
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	detail, err := h.svc.GetProjectDetail(c.Request.Context(), claimsFrom(c).ID, projectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectDetailView(detail))
}

func (h *Handler) UpdateProject(c *gin.Context) {
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req projectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	u := tt.ProjectUpdate{Name: req.Name, Description: req.Description}
	if req.HourlyRate.Set {
		u.HourlyRate = req.HourlyRate.Value
		u.ClearRate = req.HourlyRate.Value == nil
	}
	project, err := h.svc.UpdateProject(c.Request.Context(), claimsFrom(c).ID, projectID, u)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectView(project))
}

func (h *Handler) DeleteProject(c *gin.Context) {
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.DeleteProject(c.Request.Context(), claimsFrom(c).ID, projectID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (h *Handler) ProjectSummary(c *gin.Context) {
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	summary, err := h.svc.ProjectSummary(c.Request.Context(), claimsFrom(c).ID, projectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) AssignProjectEmployee(c *gin.Context) {
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.svc.AssignEmployeeToProject(c.Request.Context(), claimsFrom(c).ID, projectID, req.EmployeeID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee assigned to project"})
}

func (h *Handler) ListTasks(c *gin.Context) {
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	tasks, err := h.svc.ListTasks(c.Request.Context(), claimsFrom(c).ID, projectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskViews(tasks))
}

func (h *Handler) CreateTask(c *gin.Context) {
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	task, err := h.svc.CreateTask(c.Request.Context(), claimsFrom(c).ID, projectID, tt.TaskInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskView(task))
}

// projectTask reads the :id and :task_id path parameters.
func projectTask(c *gin.Context) (int64, int64, error) {
	projectID, err := idParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	taskID, err := idParam(c, "task_id")
	if err != nil {
		return 0, 0, err
	}
	return projectID, taskID, nil
}

func (h *Handler) UpdateTask(c *gin.Context) {
	projectID, taskID, err := projectTask(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	task, err := h.svc.UpdateTask(c.Request.Context(), claimsFrom(c).ID, projectID, taskID, tt.TaskUpdate{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}

func (h *Handler) DeleteTask(c *gin.Context) {
	projectID, taskID, err := projectTask(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.DeleteTask(c.Request.Context(), claimsFrom(c).ID, projectID, taskID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *Handler) AssignTaskEmployee(c *gin.Context) {
	projectID, taskID, err := projectTask(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.svc.AssignEmployeeToTask(c.Request.Context(), claimsFrom(c).ID, projectID, taskID, req.EmployeeID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee assigned to task"})
}

func (h *Handler) RemoveTaskEmployee(c *gin.Context) {
	employeeID, err := idParam(c, "employee_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	taskID, err := idParam(c, "task_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.RemoveEmployeeFromTask(c.Request.Context(), claimsFrom(c).ID, employeeID, taskID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee removed from task"})
}

func (h *Handler) EmployerEmployees(c *gin.Context) {
	workloads, err := h.svc.EmployerEmployees(c.Request.Context(), claimsFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, workloads)
}

func (h *Handler) EmployerSummary(c *gin.Context) {
	summary, err := h.svc.EmployerSummary(c.Request.Context(), claimsFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) EmployerDaySummary(c *gin.Context) {
	days, err := h.svc.EmployerDaySummary(c.Request.Context(), claimsFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}
