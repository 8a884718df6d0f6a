package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/agents"
	internalhttp "github.com/khatabook/number-change-portal/internal/api/http"
	"github.com/khatabook/number-change-portal/internal/api/http/middleware"
	"github.com/khatabook/number-change-portal/internal/auditlog"
	"github.com/khatabook/number-change-portal/internal/auth"
	"github.com/khatabook/number-change-portal/internal/db"
	"github.com/khatabook/number-change-portal/internal/dispatch"
	"github.com/khatabook/number-change-portal/internal/gateway"
	"github.com/khatabook/number-change-portal/internal/metrics"
	"github.com/khatabook/number-change-portal/internal/relay"
)

var AppVersion string

const limiterCleanupInterval = time.Minute

func main() {
	InitConfig()

	slog.Info("Number Change Portal", "version", AppVersion)

	if config.JWT.Secret == "" {
		slog.Error("JWT secret is not configured")
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if config.DB.Driver != db.DriverMemory {
		if err := db.RunMigrations(config.DB.Url, config.DB.Schema); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	store, err := db.Open(ctx, config.DB)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	m := metrics.New("portal")
	logService := auditlog.NewService(store.Queries)
	sender := gateway.NewDispatcher(config.Gateway, &http.Client{})

	loginLimiter := middleware.NewIPRateLimiter(config.Http.LoginRateLimit)
	go loginLimiter.StartCleanup(ctx, limiterCleanupInterval)

	services := &internalhttp.Services{
		DB:              store,
		AgentService:    agents.NewService(store.Queries),
		AuthService:     auth.NewService(config.JWT, config.Admin),
		LogService:      logService,
		DispatchService: dispatch.NewService(sender, logService, m),
		Relay:           relay.New(config.Relay, &http.Client{}),
		Metrics:         m,
		LoginLimiter:    loginLimiter,
		JWTSecret:       config.JWT.Secret,
		MetricsAPIKey:   config.Http.MetricsAPIKey,
		Version:         AppVersion,
	}

	allowedOrigins := config.Http.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"PUT", "PATCH", "GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: allowedOrigins[0] != "*",
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(gin.Recovery())
	internalhttp.SetupRoute(engine, services)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Http.Port),
		Handler: engine,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		slog.Error("Server error", "error", err)
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	slog.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
