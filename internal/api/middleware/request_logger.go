package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
)

// RequestLogger tags each request with an id (a caller-supplied uuid is
// kept) and writes one access log line when the handler chain returns.
// Health checks log at debug so probes don't flood the output.
func RequestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		rid := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.NewString()
		}
		c.Header(RequestIDHeader, rid)
		c.Set(requestIDKey, rid)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		caller := IdentityFrom(c)
		status := c.Writer.Status()

		fields := logrus.Fields{
			requestIDKey: rid,
			"method":     c.Request.Method,
			"route":      route,
			"status":     status,
			"latency_ms": time.Since(started).Milliseconds(),
			"bytes":      c.Writer.Size(),
			"client_ip":  c.ClientIP(),
			"auth_kind":  caller.Kind,
		}
		if caller.Authenticated() {
			fields["user_id"] = caller.Subject
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields["errors"] = errs.String()
		}

		entry := l.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("http request failed")
		case status >= 400:
			entry.Warn("http request rejected")
		case route == "/api/v1/health":
			entry.Debug("http request")
		default:
			entry.Info("http request")
		}
	}
}
