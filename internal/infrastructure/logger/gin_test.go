package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(t *testing.T, status int, target string) *observer.ObservedLogs {
		t.Helper()
		core, logs := observer.New(zapcore.DebugLevel)

		engine := gin.New()
		engine.Use(func(c *gin.Context) { c.Set("request_id", "req-1") })
		engine.Use(GinMiddleware(zap.New(core)))
		engine.GET("/ping", func(c *gin.Context) { c.Status(status) })

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return logs
	}

	t.Run("success logs at info with request fields", func(t *testing.T) {
		logs := serve(t, http.StatusOK, "/ping?limit=5")

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
		assert.Equal(t, "request completed", entry.Message)

		fields := entry.ContextMap()
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/ping", fields["path"])
		assert.Equal(t, int64(http.StatusOK), fields["status"])
		assert.Equal(t, "limit=5", fields["query"])
	})

	t.Run("client error logs at warn", func(t *testing.T) {
		logs := serve(t, http.StatusNotFound, "/ping")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("server error logs at error", func(t *testing.T) {
		logs := serve(t, http.StatusBadGateway, "/ping")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	engine := gin.New()
	engine.Use(Recovery(zap.New(core)))
	engine.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "panic recovered", entry.Message)
	assert.Equal(t, "kaboom", entry.ContextMap()["panic"])
	assert.Equal(t, "/boom", entry.ContextMap()["path"])
}
