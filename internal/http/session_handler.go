package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"psymetric/internal/engine"
	"psymetric/internal/service"
)

// SessionHandler cubre el ciclo de vida de una sesión: respuestas,
// cierre con scoring y consulta del análisis de fraude.
type SessionHandler struct {
	logger     *zap.Logger
	testServ   *service.TestService
	resultServ *service.ResultService
}

func NewSessionHandler(logger *zap.Logger, testServ *service.TestService, resultServ *service.ResultService) *SessionHandler {
	return &SessionHandler{
		logger:     logger,
		testServ:   testServ,
		resultServ: resultServ,
	}
}

// SubmitResponses maneja POST /sessions/:id/responses.
func (h *SessionHandler) SubmitResponses(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	var req struct {
		Responses []service.ResponseInput `json:"responses" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid responses request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	saved, err := h.testServ.SubmitResponses(c.Request.Context(), claims.UserID, c.Param("id"), req.Responses)
	if err != nil {
		h.writeSessionError(c, err, "submit responses failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"saved": saved})
}

// CompleteSession maneja POST /sessions/:id/complete. Devuelve el
// resultado tipado, la interpretación y el análisis de fraude en una
// sola respuesta.
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	completed, err := h.resultServ.CompleteSession(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, engine.ErrInsufficientData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "not enough responses to score"})
			return
		}
		if errors.Is(err, service.ErrEngineNotFound) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "scoring for this test is not implemented"})
			return
		}
		h.writeSessionError(c, err, "complete session failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":         completed.Result,
		"interpretation": completed.Interpretation,
		"fraud":          completed.Fraud,
	})
}

// SessionFraud maneja GET /sessions/:id/fraud.
func (h *SessionHandler) SessionFraud(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	analysis, err := h.resultServ.SessionFraud(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		h.writeSessionError(c, err, "session fraud lookup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"fraud": analysis})
}

func (h *SessionHandler) writeSessionError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, service.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "session already completed"})
	case errors.Is(err, service.ErrTestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "test not found"})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
