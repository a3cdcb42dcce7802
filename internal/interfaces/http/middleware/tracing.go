// Package middleware provides the gin middleware of the CRM HTTP server.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ActorHeader identifies the user acting on the request
const ActorHeader = "X-User-ID"

// MaxActorLength caps the actor value copied into spans
const MaxActorLength = 64

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns default tracing configuration
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "crm-backend",
		Enabled:     true,
	}
}

// TracingWithConfig starts a server span per request through otelgin.
// Span names follow "HTTP METHOD route", e.g. "GET /crm-api/partners/:id".
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return otelgin.Middleware(cfg.ServiceName)
}

// SpanAttributes tags the active server span. It must run after TracingWithConfig and RequestID.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if requestID := GetRequestID(c); requestID != "" {
				span.SetAttributes(attribute.String("request_id", requestID))
			}
			if actor := c.GetHeader(ActorHeader); actor != "" {
				if len(actor) > MaxActorLength {
					actor = actor[:MaxActorLength]
				}
				span.SetAttributes(attribute.String("actor", actor))
			}
		}
		c.Next()
	}
}

// SpanErrorMarker marks the active span as failed for 5xx responses and
// records the status code for every 4xx and 5xx.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
