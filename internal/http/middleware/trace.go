package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// TraceHeader echoes the active trace id back to the client so support
// requests can be matched to server logs.
func TraceHeader(headerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if headerName != "" {
			sc := trace.SpanContextFromContext(c.Request.Context())
			if sc.HasTraceID() {
				c.Header(headerName, sc.TraceID().String())
			}
		}
		c.Next()
	}
}
