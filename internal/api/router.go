package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/a2a"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/logger"
)

type RouterConfig struct {
	Handler     *Handler
	A2AHandler  *a2a.Handler
	Log         *logger.Logger
	CORSOrigins []string
	Limiter     *rate.Limiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(cfg.Log))
	router.Use(CORS(cfg.CORSOrigins))

	// Liveness
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	api := router.Group("/api")
	{
		api.GET("/health", cfg.Handler.Health)
		api.POST("/generate", RateLimit(cfg.Limiter), cfg.Handler.Generate)
	}

	if cfg.A2AHandler != nil {
		router.GET("/.well-known/agent.json", cfg.A2AHandler.ServeAgentCard)
		router.POST("/a2a/copywriter", RateLimit(cfg.Limiter), cfg.A2AHandler.HandleCopywriter)
	}

	return router
}
