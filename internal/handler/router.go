package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crm-pulse/internal/domain"
	"crm-pulse/internal/middleware"
)

type AppOptions struct {
	CORSOrigins   string
	RequestLogger bool
}

func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if opts.RequestLogger {
		app.Use(logger.New(logger.Config{
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics"
			},
		}))
	}
	if opts.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		}))
	}

	return app
}

func RegisterRoutes(app *fiber.App, h *Handlers, sessions middleware.TokenAuthenticator) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(sessions))
	write := middleware.RequireWrite()

	protected.Get("/auth/me", h.Auth.Me)
	protected.Put("/auth/me", h.Auth.UpdateMe)
	protected.Put("/auth/password", h.Auth.ChangePassword)

	users := protected.Group("/users")
	users.Get("/", h.User.List)
	users.Post("/", middleware.RequireAnyRole(domain.RoleAdmin), h.User.Create)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Put("/:id/read", h.Notification.MarkRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllRead)

	customers := protected.Group("/customers")
	customers.Post("/", write, h.Customer.Create)
	customers.Get("/", h.Customer.List)
	customers.Get("/:id", h.Customer.Get)
	customers.Put("/:id", write, h.Customer.Update)
	customers.Delete("/:id", write, h.Customer.Delete)

	customers.Get("/:customerId/activities", h.Customer.ListActivities)

	customers.Get("/:customerId/tasks", h.Task.List)
	customers.Post("/:customerId/tasks", write, h.Task.Create)
	customers.Put("/:customerId/tasks/:taskId", write, h.Task.Update)

	customers.Get("/:customerId/notes", h.Note.List)
	customers.Post("/:customerId/notes", write, h.Note.Create)
	customers.Put("/:customerId/notes/:noteId", write, h.Note.Update)
	customers.Delete("/:customerId/notes/:noteId", write, h.Note.Delete)

	leads := protected.Group("/leads")
	leads.Get("/", h.Lead.List)
	leads.Post("/:id/convert", write, h.Lead.Convert)
	leads.Put("/:id", write, h.Lead.UpdateStage)
}
