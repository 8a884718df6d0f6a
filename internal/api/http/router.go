package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/agents"
	"github.com/khatabook/number-change-portal/internal/api/http/handler"
	"github.com/khatabook/number-change-portal/internal/api/http/middleware"
	"github.com/khatabook/number-change-portal/internal/auditlog"
	"github.com/khatabook/number-change-portal/internal/auth"
	"github.com/khatabook/number-change-portal/internal/dispatch"
	"github.com/khatabook/number-change-portal/internal/gateway"
	"github.com/khatabook/number-change-portal/internal/metrics"
	"github.com/khatabook/number-change-portal/internal/relay"
)

type Services struct {
	DB              handler.Pinger
	AgentService    *agents.Service
	AuthService     *auth.Service
	LogService      *auditlog.Service
	DispatchService *dispatch.Service
	Relay           *relay.Relay
	Metrics         *metrics.Metrics
	LoginLimiter    *middleware.IPRateLimiter
	JWTSecret       string
	MetricsAPIKey   string
	Version         string
}

// SetupRoute mounts the portal API.
func SetupRoute(engine *gin.Engine, srvs *Services) {
	engine.Use(middleware.RequestLogger(srvs.Metrics))

	healthHandler := handler.NewHealthHandler(srvs.DB, srvs.Version)
	engine.GET("/health", healthHandler.Check)
	mountMetrics(engine, srvs.Metrics, srvs.MetricsAPIKey)

	api := engine.Group("/api")

	authHandler := handler.NewAuthHandler(srvs.AgentService, srvs.AuthService)
	authGroup := api.Group("/auth")
	if srvs.LoginLimiter != nil {
		authGroup.Use(srvs.LoginLimiter.Middleware())
	}
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/admin-login", authHandler.AdminLogin)

	protected := api.Group("", middleware.JWTAuth(srvs.JWTSecret))

	agentsHandler := handler.NewAgentsHandler(srvs.AgentService)
	admin := protected.Group("/agents", middleware.RequireRole(auth.RoleAdmin))
	admin.GET("", agentsHandler.ListAgents)
	admin.POST("", agentsHandler.CreateAgent)
	admin.PUT("/:id", agentsHandler.UpdateAgent)
	admin.DELETE("/:id", agentsHandler.DeleteAgent)
	admin.PATCH("/:id/status", agentsHandler.UpdateAgentStatus)

	logsHandler := handler.NewLogsHandler(srvs.LogService)
	protected.GET("/logs", logsHandler.ListLogs)
	protected.GET("/logs/export", logsHandler.ExportLogs)
	protected.POST("/logs", logsHandler.CreateLog)

	dispatchHandler := handler.NewDispatchHandler(srvs.DispatchService)
	protected.POST("/send-push-notification", dispatchHandler.Send(gateway.KindPushOTP))
	protected.POST("/send-sms", dispatchHandler.Send(gateway.KindSMSOTP))
	protected.POST("/send-whatsapp", dispatchHandler.Send(gateway.KindWhatsAppOTP))
	protected.POST("/send-whatsapp-form", dispatchHandler.Send(gateway.KindWhatsAppForm))
	protected.POST("/send-sms-form", dispatchHandler.Send(gateway.KindSMSForm))

	if srvs.Relay != nil {
		proxyHandler := handler.NewProxyHandler(srvs.Relay, srvs.Metrics)
		protected.GET("/proxy-sms", proxyHandler.ProxySMS)
	}
}

// SetupProxyRoute mounts the standalone SMS relay.
func SetupProxyRoute(engine *gin.Engine, r *relay.Relay, m *metrics.Metrics, metricsAPIKey, version string) {
	engine.Use(middleware.RequestLogger(m))

	healthHandler := handler.NewHealthHandler(nil, version)
	engine.GET("/health", healthHandler.Check)
	mountMetrics(engine, m, metricsAPIKey)

	proxyHandler := handler.NewProxyHandler(r, m)
	engine.GET("/proxy/sms", proxyHandler.ProxySMS)
}

func mountMetrics(engine *gin.Engine, m *metrics.Metrics, apiKey string) {
	if m == nil {
		return
	}
	if apiKey == "" {
		slog.Warn("Metrics API key not configured, /metrics is unauthenticated")
		engine.GET("/metrics", gin.WrapH(m.Handler()))
		return
	}
	engine.GET("/metrics", middleware.APIKeyAuth(apiKey), gin.WrapH(m.Handler()))
}
