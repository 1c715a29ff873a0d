package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddlewareLogger(t *testing.T) {
	core, obs := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MiddlewareLogger(logger))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if entries[0].Message != "Request" {
		t.Errorf("unexpected message: %s", entries[0].Message)
	}
	if fields["uri"] != "/test" || fields["method"] != "GET" {
		t.Errorf("log entry missing request info: %v", fields)
	}
	if fields["status"] != int64(200) || fields["size"] != int64(5) {
		t.Errorf("log entry missing response info: %v", fields)
	}
}

func TestMiddlewareLogger_Redirect(t *testing.T) {
	core, obs := observer.New(zap.InfoLevel)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MiddlewareLogger(zap.New(core).Sugar()))
	router.GET("/r", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "https://example.com")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/r", nil))

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusFound) {
		t.Errorf("expected status 302 in log, got %v", got)
	}
}
