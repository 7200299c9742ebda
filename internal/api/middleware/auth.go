package middleware

import (
	"net/http"

	"github.com/careercompass/api/internal/auth"
	"github.com/careercompass/api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const identityKey = "identity"

type apiError struct {
	Success bool       `json:"success"`
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
	Details any        `json:"details"`
}

func abort(c *gin.Context, status int, code utils.Code, msg string) {
	c.AbortWithStatusJSON(status, apiError{Code: code, Message: msg})
}

// Authenticate resolves the bearer token on every request. It never
// rejects: a bad token leaves the caller anonymous, and RequireAuth
// decides whether that is acceptable.
func Authenticate(r *auth.Resolver, l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := r.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if id.Rejection != "" && l != nil {
			l.WithFields(logrus.Fields{
				"path":   c.FullPath(),
				"reason": id.Rejection,
			}).Debug("bearer token rejected")
		}

		c.Set(identityKey, id)
		if id.Authenticated() {
			c.Set("user_id", id.Subject)
			c.Set("role", id.Role)
		}
		c.Next()
	}
}

// IdentityFrom returns the caller set by Authenticate, or Anonymous.
func IdentityFrom(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(auth.Identity); ok {
			return id
		}
	}
	return auth.Anonymous()
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).Authenticated() {
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}
