// Package api is the HTTP surface of tt: a gin router under /api whose
// routes compose authentication, role and device checks in front of the
// service.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tt-go/internal/tt"
)

// Options configures the router.
type Options struct {
	// MaxUploadBytes caps the screenshot attached to a time log.
	MaxUploadBytes int64
}

// Handler serves every route. Handlers translate requests into service
// calls and service errors into responses.
type Handler struct {
	svc    *tt.TTService
	logger tt.Logger
	opts   Options
}

// NewHandler creates a Handler.
func NewHandler(svc *tt.TTService, logger tt.Logger, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return &Handler{svc: svc, logger: logger, opts: opts}
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(svc *tt.TTService, logger tt.Logger, opts Options) *gin.Engine {
	h := NewHandler(svc, logger, opts)

	router := gin.New()
	router.Use(Recovery(logger), RequestLogger(logger))

	authn := Authenticate(svc)
	device := RequireDevice(svc)

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/employee/register", h.RegisterEmployee)
			auth.POST("/employee/login", h.LoginEmployee)
			auth.POST("/employer/register", h.RegisterEmployer)
			auth.POST("/employer/login", h.LoginEmployer)
			auth.POST("/admin/login", h.LoginAdmin)
			auth.POST("/refresh", h.Refresh)
		}

		employers := api.Group("/employers", authn, RequireRoles(tt.RoleEmployer))
		{
			employers.GET("/profile", h.GetEmployerProfile)
			employers.PUT("/profile", h.UpdateEmployerProfile)

			employers.GET("/projects", h.ListProjects)
			employers.POST("/projects", h.CreateProject)
			employers.GET("/projects/:id", h.GetProject)
			employers.PUT("/projects/:id", h.UpdateProject)
			employers.DELETE("/projects/:id", h.DeleteProject)
			employers.GET("/projects/:id/summary", h.ProjectSummary)
			employers.POST("/projects/:id/employees", h.AssignProjectEmployee)

			employers.GET("/projects/:id/tasks", h.ListTasks)
			employers.POST("/projects/:id/tasks", h.CreateTask)
			employers.PUT("/projects/:id/tasks/:task_id", h.UpdateTask)
			employers.DELETE("/projects/:id/tasks/:task_id", h.DeleteTask)
			employers.POST("/projects/:id/tasks/:task_id/employees", h.AssignTaskEmployee)

			employers.GET("/employees", h.EmployerEmployees)
			employers.DELETE("/employees/:employee_id/tasks/:task_id", h.RemoveTaskEmployee)

			employers.GET("/summary", h.EmployerSummary)
			employers.GET("/day-summary", h.EmployerDaySummary)
		}

		me := api.Group("/employees/me", authn, RequireRoles(tt.RoleEmployee), device)
		{
			me.GET("", h.Me)
			me.GET("/projects", h.MyProjects)
			me.GET("/tasks", h.MyTasks)
		}

		employees := api.Group("/employees", authn, RequireRoles(tt.RoleAdmin))
		{
			employees.GET("", h.ListEmployees)
			employees.POST("", h.CreateEmployee)
			employees.GET("/:id", h.GetEmployee)
			employees.PUT("/:id", h.UpdateEmployee)
			employees.DELETE("/:id", h.DeleteEmployee)
		}

		timelogs := api.Group("/timelogs", authn)
		{
			create := []gin.HandlerFunc{RequireRoles(tt.RoleEmployee), device, h.CreateTimeLog}
			list := []gin.HandlerFunc{RequireRoles(tt.RoleAdmin, tt.RoleEmployer, tt.RoleEmployee), device, h.ListTimeLogs}
			timelogs.POST("", create...)
			timelogs.POST("/", create...)
			timelogs.GET("", list...)
			timelogs.GET("/", list...)
			timelogs.GET("/:id", RequireRoles(tt.RoleAdmin, tt.RoleEmployer, tt.RoleEmployee), device, h.GetTimeLog)
			timelogs.GET("/:id/screenshot", RequireRoles(tt.RoleAdmin, tt.RoleEmployer, tt.RoleEmployee), device, h.GetScreenshot)
			timelogs.DELETE("/:id", RequireRoles(tt.RoleAdmin, tt.RoleEmployer), h.DeleteTimeLog)
		}

		api.POST("/invite/invite-employee", authn, RequireRoles(tt.RoleEmployer), h.InviteEmployee)

		activation := api.Group("/activation")
		{
			activation.GET("/activate/:token", h.ValidateActivation)
			activation.POST("/activate/:token", h.Activate)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return router
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
