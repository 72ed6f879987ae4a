package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"psymetric/internal/service"
)

// TestHandler expone el catálogo de instrumentos y la apertura de
// sesiones.
type TestHandler struct {
	logger   *zap.Logger
	testServ *service.TestService
}

func NewTestHandler(logger *zap.Logger, testServ *service.TestService) *TestHandler {
	return &TestHandler{logger: logger, testServ: testServ}
}

// ListTests maneja GET /tests.
func (h *TestHandler) ListTests(c *gin.Context) {
	tests, err := h.testServ.ListTests(c.Request.Context())
	if err != nil {
		h.logger.Error("list tests failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list tests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tests": tests})
}

// StartSession maneja POST /tests/:code/sessions. Un instrumento del
// catálogo sin motor de scoring responde 501.
func (h *TestHandler) StartSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	session, err := h.testServ.StartSession(c.Request.Context(), claims.UserID, c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "test not found"})
		case errors.Is(err, service.ErrEngineNotFound):
			c.JSON(http.StatusNotImplemented, gin.H{"error": "scoring for this test is not implemented"})
		default:
			h.logger.Error("start session failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}
