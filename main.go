package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	apimod "github.com/example/task-manager-api/modules/api"
	authmod "github.com/example/task-manager-api/modules/auth"
	cachemod "github.com/example/task-manager-api/modules/cache"
	taskmod "github.com/example/task-manager-api/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	httpPort := getEnvInt("HTTP_PORT", 4000)
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)
	cachePrefix := getEnv("CACHE_PREFIX", "taskmanager:")

	log.Println("=== Task Manager API ===")

	authModule := authmod.NewModule()
	taskModule := taskmod.NewModule()
	cacheModule := cachemod.NewModule(redisAddr, cachePrefix, cacheTTL)
	apiModule := apimod.NewModule(httpPort)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then dependent modules.
	app.Register(cacheModule)
	app.Register(authModule)
	app.Register(taskModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wire the cache into the task module once both have started. A nil
	// cache (Redis unavailable) leaves caching disabled.
	taskModule.SetCache(cacheModule.GetCache())

	printStartupInfo(httpPort)

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

func printStartupInfo(port int) {
	log.Println("")
	log.Printf("Application started successfully on http://localhost:%d", port)
	log.Println("")
	log.Println("  Public endpoints:")
	log.Println("  POST   /api/auth/register   - Register a new user")
	log.Println("  POST   /api/auth/login      - Login and get a bearer token")
	log.Println("  GET    /api/auth/users      - List registered users")
	log.Println("  GET    /health              - Health check")
	log.Println("")
	log.Println("  Protected endpoints (require Bearer token):")
	log.Println("  POST   /api/tasks           - Create a task")
	log.Println("  GET    /api/tasks?status=   - List tasks (completed|pending)")
	log.Println("  GET    /api/tasks/:id       - Get a task")
	log.Println("  PUT    /api/tasks/:id       - Update a task")
	log.Println("")
	log.Println("  DELETE /api/tasks/:id       - Delete a task (no auth; see docs)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
