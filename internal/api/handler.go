package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/copyengine"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/logger"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
)

// Generator produces copy for a profile; *copyengine.Engine implements it.
type Generator interface {
	Generate(ctx context.Context, p models.ClientProfile, count int) (*models.GenerateResponse, error)
}

type Handler struct {
	engine       Generator
	defaultCount int
	log          *logger.Logger
}

func NewHandler(engine Generator, defaultCount int, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if defaultCount <= 0 {
		defaultCount = 4
	}
	return &Handler{engine: engine, defaultCount: defaultCount, log: log}
}

// Generate handles POST /api/generate.
func (h *Handler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid generate payload", "error", err)
		respondError(c, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	count := h.defaultCount
	if req.Count != nil {
		count = *req.Count
	}

	resp, err := h.engine.Generate(c.Request.Context(), req.ClientProfile, count)
	if err != nil {
		if errors.Is(err, copyengine.ErrInvalidProfile) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("generation failed", "client", req.ClientName, "error", err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health handles GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
