package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockledger/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares. The
// webhook handler may be nil when WhatsApp is not configured.
func New(stock *handlers.StockHandler, webhook *handlers.WebhookHandler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if webhook != nil {
		r.GET("/webhook", webhook.Verify)
		r.POST("/webhook", webhook.Receive)
		r.POST("/send-message", webhook.SendMessage)
	}

	s := r.Group("/stock")
	s.GET("", stock.Get)
	s.GET("/reorder", stock.ReorderNeeded)
	s.POST("/add", stock.AddStock)
	s.POST("/reserve", stock.Reserve)
	s.POST("/release", stock.Release)
	s.POST("/ship", stock.Ship)
	s.POST("/damaged", stock.RemoveDamaged)
	s.PUT("/threshold", stock.UpdateThreshold)
	s.PUT("/capacity", stock.UpdateCapacity)

	logger.Info("router initialized", zap.Bool("webhook_enabled", webhook != nil))

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
