package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio-web/internal/render"
)

const requestIDHeader = "X-Request-ID"

// NewWebRouter configura el router que sirve la vista HTML del portfolio.
func NewWebRouter(logger *zap.Logger, viewH *ViewHandler, renderer *render.Renderer) *gin.Engine {
	r := gin.New()

	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery())
	r.SetHTMLTemplate(renderer.Template())

	r.GET("/", viewH.Index)
	r.POST("/retry", viewH.Retry)
	r.GET("/state", viewH.State)
	r.GET("/healthz", viewH.Healthz)

	return r
}

// NewAPIRouter configura el router JSON del backend. Si mediaRoot no es vacio,
// sirve los archivos subidos (fotos, CV, imagenes de proyectos) bajo /media/.
func NewAPIRouter(logger *zap.Logger, portfolioH *PortfolioHandler, contactH *ContactHandler, mediaRoot string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Middlewares basicos: request id, logging y recovery. JSON content-type solo en /api.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery())

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Méthode non autorisée"})
	})

	api := r.Group("/api", jsonContentTypeMiddleware())
	api.GET("/portfolio/", portfolioH.GetPortfolio)
	api.POST("/contact/", contactH.PostContact)
	api.POST("/project/:id/views/", portfolioH.IncrementViews)

	if mediaRoot != "" {
		r.Static("/media", mediaRoot)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

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
			zap.String("request_id", c.GetString(requestIDHeader)),
		)
	}
}

// requestIDMiddleware reutiliza el X-Request-ID entrante (hasta 64 bytes) o genera uno nuevo.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
