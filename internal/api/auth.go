package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tt-go/internal/tt"
)

type employeeRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type employerRegisterRequest struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
}

type employeeLoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	MACAddress string `json:"mac_address" binding:"required"`
}

type emailLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *Handler) RegisterEmployee(c *gin.Context) {
	var req employeeRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	employee, err := h.svc.RegisterEmployee(c.Request.Context(), tt.EmployeeRegistration{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Employee registered successfully", "employee": newEmployeeView(employee)})
}

func (h *Handler) RegisterEmployer(c *gin.Context) {
	var req employerRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	employer, err := h.svc.RegisterEmployer(c.Request.Context(), tt.EmployerRegistration{
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Employer registered successfully", "employer": newEmployerView(employer)})
}

func (h *Handler) LoginEmployee(c *gin.Context) {
	var req employeeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	session, err := h.svc.LoginEmployee(c.Request.Context(), req.Username, req.Password, req.MACAddress)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) LoginEmployer(c *gin.Context) {
	var req emailLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	session, err := h.svc.LoginEmployer(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) LoginAdmin(c *gin.Context) {
	var req emailLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	session, err := h.svc.LoginAdmin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	session, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
