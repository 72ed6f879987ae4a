package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"psymetric/internal/service"
)

// ResultHandler expone los resultados históricos del usuario.
type ResultHandler struct {
	logger     *zap.Logger
	resultServ *service.ResultService
}

func NewResultHandler(logger *zap.Logger, resultServ *service.ResultService) *ResultHandler {
	return &ResultHandler{logger: logger, resultServ: resultServ}
}

// ListResults maneja GET /results.
func (h *ResultHandler) ListResults(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	results, err := h.resultServ.ListResults(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list results failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list results"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetLatestResult maneja GET /results/:code.
func (h *ResultHandler) GetLatestResult(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	result, report, err := h.resultServ.GetLatestResult(c.Request.Context(), claims.UserID, c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
			return
		}
		h.logger.Error("get result failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get result"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "interpretation": report})
}
