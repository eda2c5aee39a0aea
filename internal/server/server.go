package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"frontdesk/internal/config"
	"frontdesk/internal/observability"
	"frontdesk/internal/orchestrator"
)

// Server owns the gin engine and the underlying http.Server.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	logger     *observability.Logger
}

// New assembles the middleware chain and routes. The orchestrator and its
// collaborators are constructed once by the caller and passed in by
// reference; the server holds no other state.
func New(settings *config.Settings, orch *orchestrator.Orchestrator, logger *observability.Logger, metrics *observability.Metrics) *Server {
	if settings.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(RequestLogger(logger))
	engine.Use(MetricsMiddleware(metrics))

	corsConfig := cors.DefaultConfig()
	if len(settings.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = settings.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Webhook-Secret", "X-Request-ID"}
	engine.Use(cors.New(corsConfig))

	healthHandler := NewHealthHandler(settings)
	webhookHandler := NewWebhookHandler(orch, settings.Location, logger)
	bridgeHandler := NewBridgeHandler(settings.AgentID, logger)

	engine.GET("/", healthHandler.HandleRoot)
	engine.GET("/health", healthHandler.HandleHealth)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	engine.POST("/webhook", SharedSecret(settings.WebhookSecret), webhookHandler.Handle)
	engine.POST("/call", bridgeHandler.Handle)

	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:         ":" + settings.Port,
			Handler:      engine,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
	}
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
