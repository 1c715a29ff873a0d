package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware разрешает запросы с любых источников.
// Access-Control-Allow-Origin выставляется на каждый ответ, включая ошибки и редиректы,
// независимо от наличия заголовка Origin в запросе. На OPTIONS дополнительно
// перечисляются разрешённые методы и заголовки; сам ответ на preflight отдаёт маршрут.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
		}

		c.Next()
	}
}
