package main

import (
	"context"
	"ctchen222/blog-api/internal/api/controller"
	"ctchen222/blog-api/internal/api/repository"
	"ctchen222/blog-api/internal/api/service"
	"ctchen222/blog-api/internal/auth"
	"ctchen222/blog-api/internal/config"
	"ctchen222/blog-api/internal/logger"
	"ctchen222/blog-api/internal/server"
	"ctchen222/blog-api/internal/telemetry"
	"ctchen222/blog-api/internal/validator"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(cfg.Log)
	gin.SetMode(cfg.App.GinMode)

	// Create repositories
	userRepo := repository.NewUserRepository()
	postRepo := repository.NewPostRepository()

	// Credentials and sessions
	hasher := auth.NewPasswordHasher(auth.Argon2Params{
		Memory:      uint32(cfg.Auth.Argon2.Memory),
		Iterations:  uint32(cfg.Auth.Argon2.Iterations),
		Parallelism: uint8(cfg.Auth.Argon2.Parallelism),
		KeyLength:   uint32(cfg.Auth.Argon2.KeyLength),
		SaltLength:  uint32(cfg.Auth.Argon2.SaltLength),
	})
	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.TokenTTL())

	// Validation runs off the request goroutines
	pool := validator.NewPool(cfg.Validation.Workers, cfg.Validation.QueueSize)
	defer pool.Close()

	// Create services
	userService := service.NewUserService(userRepo, hasher, tokens)
	postService := service.NewPostService(postRepo)

	// Create controllers
	contract := controller.NewContract(pool, cfg.ValidationTimeout(), tokens)
	userController := controller.NewUserController(userService, contract)
	postController := controller.NewPostController(postService, contract)

	// Create the Gin-based server
	srv := server.NewServer(userController, postController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("http server started", "addr", cfg.HTTPAddr(), "env", cfg.App.Env)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exiting")
}
