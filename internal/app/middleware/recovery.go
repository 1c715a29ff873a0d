package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware перехватывает панику в хендлере, пишет её в лог
// и отвечает 500 с общим текстом без подробностей.
func RecoveryMiddleware(sugar *zap.SugaredLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		sugar.Errorw("Panic recovered",
			"uri", c.Request.URL.Path,
			"method", c.Request.Method,
			"panic", recovered,
		)
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.AbortWithStatus(http.StatusInternalServerError)
		c.Writer.WriteString("An error occurred")
	})
}
