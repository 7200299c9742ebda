package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careercompass/api/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func init() { gin.SetMode(gin.TestMode) }

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(auth.NewResolver(nil, auth.NewMockTokens(testSecret)), nil))
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := auth.NewMockTokens(testSecret).Issue("u-1", "a@b.co", role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(r http.Handler, method, authz string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/x", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := newEngine(RequireAuth())

	w := do(r, http.MethodGet, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"code":"UNAUTHORIZED","message":"Authentication required","details":null}`, w.Body.String())

	w = do(r, http.MethodGet, "Bearer not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, bearer(t, "user"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newEngine(RequireAdmin())

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, bearer(t, "user"), nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, bearer(t, "ADMIN"), nil).Code)
}

func TestAuthenticateSetsContextKeys(t *testing.T) {
	r := gin.New()
	r.Use(Authenticate(auth.NewResolver(nil, auth.NewMockTokens(testSecret)), nil))
	r.GET("/x", func(c *gin.Context) {
		id := IdentityFrom(c)
		assert.Equal(t, auth.KindMock, id.Kind)
		assert.Equal(t, "u-1", c.GetString("user_id"))
		assert.Equal(t, "user", c.GetString("role"))
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodGet, bearer(t, ""), nil).Code)
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(2))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "", nil).Code)

	w := do(r, http.MethodGet, "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"RATE_LIMITED"`)
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(RateLimit(0))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "", nil).Code)
	}
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS("http://localhost:5173/"))

	w := do(r, http.MethodGet, "", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = do(r, http.MethodGet, "", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodOptions, "", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestRequestLogger(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	r := newEngine(RequestLogger(l))

	w := do(r, http.MethodGet, bearer(t, "user"), nil)
	rid := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(rid)
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, rid, entry.Data["request_id"])
	assert.Equal(t, "/x", entry.Data["route"])
	assert.Equal(t, "u-1", entry.Data["user_id"])

	keep := uuid.NewString()
	w = do(r, http.MethodGet, "", map[string]string{RequestIDHeader: keep})
	assert.Equal(t, keep, w.Header().Get(RequestIDHeader))
	_, hasUser := hook.LastEntry().Data["user_id"]
	assert.False(t, hasUser)

	w = do(r, http.MethodGet, "", map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}
