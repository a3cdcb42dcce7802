package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return p.err
}

func TestHealthHandler_Check(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantHealth string
	}{
		{"healthy", nil, http.StatusOK, "healthy"},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			router.NewRouter(engine).Register(router.HealthRoutes(handler.NewHealthHandler(stubPinger{err: tt.err}))).Setup()

			w, env := do(t, engine, http.MethodGet, "/crm-api/health", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			var status handler.HealthStatus
			require.NoError(t, json.Unmarshal(env.Data, &status))
			assert.Equal(t, tt.wantHealth, status.Status)
			assert.NotEmpty(t, status.Time)
		})
	}
}
