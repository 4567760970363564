package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/educonnect/backend/internal/model"
	"github.com/educonnect/backend/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(tokens *token.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := NewAuthMiddleware(tokens)

	protected := r.Group("/", auth.RequireAuth())
	protected.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subject": SubjectID(c),
			"role":    SubjectRole(c),
		})
	})

	admin := protected.Group("/admin", auth.RequireRole(model.RoleAdmin))
	admin.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	tokens := token.NewManager("testsecret", time.Hour)
	r := newTestRouter(tokens)

	signed, _, err := tokens.Issue("UID100", model.RoleStudent)
	require.NoError(t, err)

	w := doRequest(t, r, "/whoami", "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "UID100")
	assert.Contains(t, w.Body.String(), "student")
}

func TestRequireAuthMissingToken(t *testing.T) {
	r := newTestRouter(token.NewManager("testsecret", time.Hour))

	w := doRequest(t, r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	tokens := token.NewManager("testsecret", time.Hour)
	r := newTestRouter(tokens)

	signed, _, err := tokens.Issue("UID100", model.RoleStudent)
	require.NoError(t, err)

	// Scheme must be Bearer.
	w := doRequest(t, r, "/whoami", "Token "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := token.NewManager("testsecret", -time.Minute)
	r := newTestRouter(token.NewManager("testsecret", time.Hour))

	signed, _, err := expired.Issue("UID100", model.RoleStudent)
	require.NoError(t, err)

	w := doRequest(t, r, "/whoami", "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthTamperedToken(t *testing.T) {
	other := token.NewManager("othersecret", time.Hour)
	r := newTestRouter(token.NewManager("testsecret", time.Hour))

	signed, _, err := other.Issue("UID100", model.RoleStudent)
	require.NoError(t, err)

	w := doRequest(t, r, "/whoami", "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := token.NewManager("testsecret", time.Hour)
	r := newTestRouter(tokens)

	adminToken, _, err := tokens.Issue("ADM100", model.RoleAdmin)
	require.NoError(t, err)
	studentToken, _, err := tokens.Issue("UID100", model.RoleStudent)
	require.NoError(t, err)

	w := doRequest(t, r, "/admin/ping", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, "/admin/ping", "Bearer "+studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
