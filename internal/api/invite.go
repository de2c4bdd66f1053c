package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tt-go/internal/tt"
)

type inviteRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	ProjectID *int64 `json:"project_id"`
}

type activateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// InviteEmployee answers 201 when a new invitation was issued and 200 when
// the employee was already active.
func (h *Handler) InviteEmployee(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	res, err := h.svc.Invite(c.Request.Context(), claimsFrom(c).ID, tt.Invitation{
		Email:     req.Email,
		Name:      req.Name,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.AlreadyActive {
		c.JSON(http.StatusOK, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ValidateActivation(c *gin.Context) {
	info, err := h.svc.ValidateActivationToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) Activate(c *gin.Context) {
	var req activateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	employee, err := h.svc.Activate(c.Request.Context(), c.Param("token"), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account activated successfully", "employee": newEmployeeView(employee)})
}
