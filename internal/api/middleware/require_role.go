package middleware

import (
	"net/http"
	"strings"

	"github.com/careercompass/api/internal/utils"
	"github.com/gin-gonic/gin"
)

// RequireRole must run after Authenticate.
func RequireRole(allowed ...string) gin.HandlerFunc {
	allow := map[string]struct{}{}
	for _, a := range allowed {
		a = strings.TrimSpace(strings.ToLower(a))
		if a != "" {
			allow[a] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if !id.Authenticated() {
			abort(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Authentication required")
			return
		}

		role := strings.ToLower(strings.TrimSpace(id.Role))
		if _, ok := allow[role]; !ok {
			abort(c, http.StatusForbidden, utils.CodeForbidden, "Forbidden")
			return
		}

		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc { return RequireRole("admin") }
