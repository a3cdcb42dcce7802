package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyLimit(t *testing.T) {
	newRouter := func(limit int64) *gin.Engine {
		router := gin.New()
		router.Use(BodyLimit(limit))
		router.POST("/partners", func(c *gin.Context) {
			if _, err := io.ReadAll(c.Request.Body); err != nil {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("allows body within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(1024).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/partners", strings.NewReader("small")))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects declared oversize body with envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(100).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/partners", strings.NewReader(strings.Repeat("x", 200))))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		var body dto.Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, dto.StatusError, body.Meta.Status)
		assert.Equal(t, "413", body.Meta.Code)
		assert.Equal(t, dto.ErrCodePayloadTooLarge, body.Meta.ErrorCode)
	})

	t.Run("caps streamed body without content length", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/partners", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		newRouter(100).ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
