package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"

	"github.com/stack-Tech-1/dept-exec-backend/modules/api"
	"github.com/stack-Tech-1/dept-exec-backend/modules/auth"
	"github.com/stack-Tech-1/dept-exec-backend/modules/eventbus"
	"github.com/stack-Tech-1/dept-exec-backend/modules/minutes"
	"github.com/stack-Tech-1/dept-exec-backend/modules/notifier"
	"github.com/stack-Tech-1/dept-exec-backend/modules/storage"
	"github.com/stack-Tech-1/dept-exec-backend/modules/sweeper"
	"github.com/stack-Tech-1/dept-exec-backend/modules/task"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Department Executive Backend ===")

	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "dept_exec.db"
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Shared infrastructure wired into the modules below
	bus := eventbus.New()
	mailer := notifier.NewMailerFromEnv()

	authModule := auth.NewModule(db, mailer)
	users := authModule.GetUserRepository()

	taskModule := task.NewModule(db, users, bus)
	minutesModule := minutes.NewModule(db, users)
	notifierModule := notifier.NewModule(bus, users, mailer)
	sweeperModule := sweeper.NewModule(taskModule.GetStore(), bus)
	apiModule := api.NewModule(taskModule.GetService(), minutesModule.GetService(), notifierModule)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(storage.NewModule(db, dbPath))
	app.Register(eventbus.NewModule(bus))
	app.Register(authModule)
	app.Register(taskModule)
	app.Register(minutesModule)
	app.Register(notifierModule)
	app.Register(sweeperModule)
	app.Register(apiModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register         - Complete an invitation")
	log.Println("  POST   /api/v1/auth/login            - Login and get a token")
	log.Println("  GET    /health                       - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  POST   /api/v1/auth/invite           - Invite a member (admin)")
	log.Println("  GET    /api/v1/profile               - Current user profile")
	log.Println("  GET    /api/v1/users                 - Account roster (admin)")
	log.Println("  POST   /api/v1/tasks                 - Create a task (admin)")
	log.Println("  GET    /api/v1/tasks                 - List visible tasks")
	log.Println("  GET    /api/v1/tasks/:id             - Get a task")
	log.Println("  PATCH  /api/v1/tasks/:id/status      - Advance a task")
	log.Println("  POST   /api/v1/minutes               - Record minutes (admin)")
	log.Println("  GET    /api/v1/minutes               - List visible minutes")
	log.Println("  GET    /api/v1/minutes/:id           - Get a minutes record")
	log.Println("  PUT    /api/v1/minutes/:id           - Edit unapproved minutes (admin)")
	log.Println("  PATCH  /api/v1/minutes/:id/approve   - Approve and lock (admin)")
	log.Println("  GET    /api/v1/minutes/:id/pdf       - Export approved minutes")
	log.Println("  GET    /api/v1/notifications         - List notifications")
	log.Println("  PATCH  /api/v1/notifications/read    - Mark all read")
	log.Println("")
	log.Println("Press Ctrl+C to trigger graceful shutdown")
}
