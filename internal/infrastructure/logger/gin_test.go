package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("logs a completed request at info", func(t *testing.T) {
		log, logs := newObservedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		req, _ := http.NewRequest(http.MethodGet, "/ping?verbose=1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, "request completed", entries[0].Message)

		fields := entries[0].ContextMap()
		assert.Equal(t, "/ping", fields["path"])
		assert.Equal(t, int64(http.StatusOK), fields["status"])
		assert.Equal(t, "verbose=1", fields["query"])
	})

	t.Run("logs server errors at error level", func(t *testing.T) {
		log, logs := newObservedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/boom", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	})

	t.Run("logs client errors at warn level", func(t *testing.T) {
		log, logs := newObservedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/bad", func(c *gin.Context) {
			c.Status(http.StatusBadRequest)
		})

		req, _ := http.NewRequest(http.MethodGet, "/bad", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
	})

	t.Run("exposes a request-scoped logger in the gin context", func(t *testing.T) {
		log, _ := newObservedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/scoped", func(c *gin.Context) {
			assert.NotNil(t, GetGinLogger(c))
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/scoped", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("turns a panic into a 500 and logs it", func(t *testing.T) {
		log, logs := newObservedLogger()

		router := gin.New()
		router.Use(Recovery(log))
		router.GET("/panic", func(c *gin.Context) {
			panic("something went wrong")
		})

		req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "panic recovered", entries[0].Message)
		assert.Equal(t, "something went wrong", entries[0].ContextMap()["panic"])
	})

	t.Run("passes normal requests through", func(t *testing.T) {
		log, logs := newObservedLogger()

		router := gin.New()
		router.Use(Recovery(log))
		router.GET("/ok", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, logs.All())
	})
}

func TestGetGinLogger_OutsideRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))
}
