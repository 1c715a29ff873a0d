// Package middleware содержит Gin-middleware сервиса: логирование запросов,
// gzip, CORS, метрики и восстановление после паники.
package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// gzipWriter оборачивает gin.ResponseWriter. gzip.Writer создаётся при первой записи,
// поэтому ответы без тела (редирект без тела, preflight) уходят как есть.
type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	if g.writer == nil {
		h := g.Header()
		h.Set("Content-Encoding", "gzip")
		h.Add("Vary", "Accept-Encoding")
		h.Del("Content-Length")
		g.writer = gzip.NewWriter(g.ResponseWriter)
	}
	return g.writer.Write(data)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

func (g *gzipWriter) close() {
	if g.writer != nil {
		g.writer.Close()
	}
}

// GzipMiddleware возвращает Gin-middleware, который:
//  1. при входящем запросе с заголовком Content-Encoding: gzip
//     распаковывает тело запроса;
//  2. при наличии Accept-Encoding: gzip в заголовках запроса
//     сжимает исходящий ответ в формате gzip.
func GzipMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Content-Encoding") == "gzip" {
			reader, err := gzip.NewReader(c.Request.Body)
			if err != nil {
				c.Header("Content-Type", "text/plain; charset=utf-8")
				c.AbortWithStatus(http.StatusBadRequest)
				c.Writer.WriteString("Invalid gzip content")
				return
			}
			defer reader.Close()
			c.Request.Body = io.NopCloser(reader)
			c.Request.Header.Del("Content-Encoding")
		}

		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gw := &gzipWriter{ResponseWriter: c.Writer}
		c.Writer = gw
		defer gw.close()

		c.Next()
	}
}
