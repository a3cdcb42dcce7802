package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoEngine() *gin.Engine {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("bad", http.StatusBadRequest, dto.ErrCodeBadRequest))
			return
		}
		body["user"] = c.GetHeader("X-User-ID")
		c.JSON(http.StatusOK, dto.NewSuccessResponse(body, "ok", http.StatusOK))
	})
	return engine
}

func TestPerform_MarshalsBodyAndHeaders(t *testing.T) {
	w := Perform(t, echoEngine(), http.MethodPost, "/echo",
		map[string]any{"brand_name": "Acme"}, map[string]string{"X-User-ID": "u-7"})

	env := AssertSuccessResponse(t, w, http.StatusOK)
	data := DecodeData[map[string]string](t, env)
	assert.Equal(t, "Acme", data["brand_name"])
	assert.Equal(t, "u-7", data["user"])
}

func TestPerform_RawBody(t *testing.T) {
	w := Perform(t, echoEngine(), http.MethodPost, "/echo", "{not json", nil)
	AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("partner-1"), NewTestUUID("partner-1"))
	assert.NotEqual(t, NewTestUUID("partner-1"), NewTestUUID("partner-2"))
}

func TestContextWithTimeout(t *testing.T) {
	ctx := ContextWithTimeout(t, time.Minute)
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestPtr(t *testing.T) {
	p := Ptr("lead")
	require.NotNil(t, p)
	assert.Equal(t, "lead", *p)
}
