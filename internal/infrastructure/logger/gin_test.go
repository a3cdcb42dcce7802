package logger

import (
	"encoding/json"
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

func findEntry(entries []observer.LoggedEntry, msg string) *observer.LoggedEntry {
	for i := range entries {
		if entries[i].Message == msg {
			return &entries[i]
		}
	}
	return nil
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"success logs info", http.StatusOK, zapcore.InfoLevel},
		{"client error logs warn", http.StatusNotFound, zapcore.WarnLevel},
		{"server error logs error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set("request_id", "req-123")
				c.Next()
			})
			router.Use(GinMiddleware(zap.New(core)))
			router.GET("/partners", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/partners?city=tehran", nil)
			router.ServeHTTP(w, req)

			entry := findEntry(recorded.All(), "HTTP Request")
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)

			fields := entry.ContextMap()
			assert.Equal(t, "req-123", fields["request_id"])
			assert.Equal(t, "/partners", fields["path"])
			assert.Equal(t, "city=tehran", fields["query"])
			assert.EqualValues(t, tt.status, fields["status"])
		})
	}
}

func TestGinMiddleware_ExposesRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/partners/:id", func(c *gin.Context) {
		GetGinLogger(c).Info("from gin context")
		FromContext(c.Request.Context()).Info("from request context")
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/partners/abc", nil))

	for _, msg := range []string{"from gin context", "from request context"} {
		entry := findEntry(recorded.All(), msg)
		require.NotNil(t, entry, msg)
		assert.Equal(t, http.MethodGet, entry.ContextMap()["method"])
	}
}

func TestGetGinLogger_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Data any `json:"data"`
		Meta struct {
			Status string `json:"status"`
			Code   string `json:"code"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body.Data)
	assert.Equal(t, "error", body.Meta.Status)
	assert.Equal(t, "500", body.Meta.Code)

	require.NotNil(t, findEntry(recorded.All(), "Panic recovered"))
}
