package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tt-go/internal/tt"
)

type employeeCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type employeeUpdateRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Active          *bool   `json:"active"`
	ProfileImageURL *string `json:"profile_image_url"`
}

type createdEmployeeView struct {
	employeeView
	ActivationToken string     `json:"activation_token,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

func (h *Handler) Me(c *gin.Context) {
	employee, err := h.svc.GetEmployee(c.Request.Context(), claimsFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newEmployeeView(employee))
}

func (h *Handler) MyProjects(c *gin.Context) {
	projects, err := h.svc.MyProjects(c.Request.Context(), claimsFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectViews(projects))
}

func (h *Handler) MyTasks(c *gin.Context) {
	tasks, err := h.svc.MyTasks(c.Request.Context(), claimsFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskViews(tasks))
}

func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.svc.ListEmployees(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newEmployeeViews(employees))
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	var req employeeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	created, err := h.svc.CreateEmployee(c.Request.Context(), tt.EmployeeInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdEmployeeView{
		employeeView:    newEmployeeView(created.Employee),
		ActivationToken: created.ActivationToken,
		ExpiresAt:       created.ExpiresAt,
	})
}

func (h *Handler) GetEmployee(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	employee, err := h.svc.GetEmployee(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newEmployeeView(employee))
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req employeeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	employee, err := h.svc.UpdateEmployee(c.Request.Context(), id, tt.EmployeeUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Active:          req.Active,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newEmployeeView(employee))
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.DeleteEmployee(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
