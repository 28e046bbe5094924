package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/config"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/handler"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/middleware"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/models"
	"github.com/waiyanminkoko/internship-placement-management-system-sc2002-sub001/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	InternshipHandler  *handler.InternshipHandler
	ApplicationHandler *handler.ApplicationHandler
	WithdrawalHandler  *handler.WithdrawalHandler
	StaffHandler       *handler.StaffHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	student := api.Group("/student", jwtMiddleware, middleware.RequireRole(string(models.RoleStudent)))
	if deps.InternshipHandler != nil {
		deps.InternshipHandler.RegisterStudent(student.Group("/internships"))
	}
	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.RegisterStudent(student.Group("/applications"))
	}
	if deps.WithdrawalHandler != nil {
		deps.WithdrawalHandler.RegisterStudent(student.Group("/withdrawals"))
	}

	representative := api.Group("/representative", jwtMiddleware, middleware.RequireRole(string(models.RoleRepresentative)))
	if deps.InternshipHandler != nil {
		deps.InternshipHandler.RegisterRepresentative(representative.Group("/internships"))
	}
	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.RegisterRepresentative(representative)
	}

	staff := api.Group("/staff", jwtMiddleware, middleware.RequireRole(string(models.RoleStaff)))
	if deps.StaffHandler != nil {
		deps.StaffHandler.Register(staff)
	}
	if deps.WithdrawalHandler != nil {
		deps.WithdrawalHandler.RegisterStaff(staff.Group("/withdrawals"))
	}
}
