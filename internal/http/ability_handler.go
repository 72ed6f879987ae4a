package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"psymetric/internal/service"
)

// AbilityHandler expone el perfil agregado de habilidades y la búsqueda
// de perfiles similares.
type AbilityHandler struct {
	logger       *zap.Logger
	abilityServ  *service.AbilityService
	similarLimit int
}

func NewAbilityHandler(logger *zap.Logger, abilityServ *service.AbilityService, similarLimit int) *AbilityHandler {
	if similarLimit <= 0 {
		similarLimit = 10
	}
	return &AbilityHandler{
		logger:       logger,
		abilityServ:  abilityServ,
		similarLimit: similarLimit,
	}
}

// GetProfile maneja GET /abilities.
func (h *AbilityHandler) GetProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	profile, err := h.abilityServ.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("ability profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build ability profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// FindSimilar maneja GET /abilities/similar.
func (h *AbilityHandler) FindSimilar(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	limit := h.similarLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	similar, err := h.abilityServ.FindSimilar(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		h.logger.Error("similar profiles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search similar profiles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"similar": similar})
}
