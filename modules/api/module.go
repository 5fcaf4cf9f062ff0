package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
	"github.com/stack-Tech-1/dept-exec-backend/modules/auth"
	"github.com/stack-Tech-1/dept-exec-backend/modules/minutes"
	"github.com/stack-Tech-1/dept-exec-backend/modules/notifier"
	"github.com/stack-Tech-1/dept-exec-backend/modules/task"
)

// DefaultPort is the HTTP listen port when HTTP_PORT is unset.
const DefaultPort = 3000

// Module is the HTTP API module. It exposes the onboarding, task, minutes,
// and notification surfaces behind role-gated routes.
type Module struct {
	app           *fiber.App
	port          int
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	tasks         *task.Service
	minutes       *minutes.Service
	notifier      *notifier.Module
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new API Module.
func NewModule(tasks *task.Service, minutesService *minutes.Service, notifierModule *notifier.Module) *Module {
	return &Module{
		port:     loadPort(),
		tasks:    tasks,
		minutes:  minutesService,
		notifier: notifierModule,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	// Add middleware
	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	// Setup routes
	m.setupRoutes()

	// Start server in goroutine
	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *Module) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *Module) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.authAdapter, m.tasks, m.minutes, m.notifier.GetStore())

	// Health check endpoint
	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	// API v1 routes
	v1 := m.app.Group("/api/v1")

	// Public auth routes
	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)

	// Protected routes (require authentication)
	protected := v1.Group("")
	protected.Use(AuthMiddleware(m.authAdapter))
	adminOnly := RequireRoles(user.RoleAdmin)

	protected.Post("/auth/invite", adminOnly, handlers.Invite)
	protected.Get("/profile", handlers.Profile)
	protected.Get("/users", adminOnly, handlers.ListUsers)

	tasks := protected.Group("/tasks")
	tasks.Post("/", adminOnly, handlers.CreateTask)
	tasks.Get("/", handlers.ListTasks)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Patch("/:id/status", handlers.UpdateTaskStatus)

	minutesRoutes := protected.Group("/minutes")
	minutesRoutes.Post("/", adminOnly, handlers.CreateMinutes)
	minutesRoutes.Get("/", handlers.ListMinutes)
	minutesRoutes.Get("/:id", handlers.GetMinutes)
	minutesRoutes.Get("/:id/pdf", handlers.ExportMinutes)
	minutesRoutes.Put("/:id", adminOnly, handlers.UpdateMinutes)
	minutesRoutes.Patch("/:id/approve", adminOnly, handlers.ApproveMinutes)
	minutesRoutes.Delete("/:id", handlers.DeleteMinutes)

	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.ListNotifications)
	notifications.Patch("/read", handlers.MarkNotificationsRead)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}

// loadPort reads the HTTP listen port from the environment.
func loadPort() int {
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			return p
		}
		log.Printf("[api] Invalid HTTP_PORT %q, using default %d", v, DefaultPort)
	}
	return DefaultPort
}
