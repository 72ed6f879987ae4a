package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"psymetric/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtServ *service.JWTService,
	authH *AuthHandler,
	testH *TestHandler,
	sessionH *SessionHandler,
	resultH *ResultHandler,
	abilityH *AbilityHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	auth := r.Group("/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)
	auth.POST("/logout", authH.Logout)

	// Todo lo demás requiere access token.
	api := r.Group("/", JWTAuthMiddleware(jwtServ))
	api.GET("/tests", testH.ListTests)
	api.POST("/tests/:code/sessions", testH.StartSession)

	api.POST("/sessions/:id/responses", sessionH.SubmitResponses)
	api.POST("/sessions/:id/complete", sessionH.CompleteSession)
	api.GET("/sessions/:id/fraud", sessionH.SessionFraud)

	api.GET("/results", resultH.ListResults)
	api.GET("/results/:code", resultH.GetLatestResult)

	api.GET("/abilities", abilityH.GetProfile)
	api.GET("/abilities/similar", abilityH.FindSimilar)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
