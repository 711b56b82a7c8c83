package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hoodlab-backend/pkg/container"
	"hoodlab-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	logger.Init(getEnv("APP_ENV", "development"))

	// Worker dùng chung DI container với API:
	// cần order repo + payment service để xử lý task
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	c, err := container.NewContainer(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Close()

	handlers := initializeHandlers(c)
	srv := setupAsynqServer(c.Config, handlers)
	scheduler := setupScheduler(c.Config)

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker", nil)
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("worker stopped", nil)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
