package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/craftnest/craftnest-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "middleware-test-secret"

func setupAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(testJWTSecret)
	r := gin.New()
	r.GET("/me", m.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/admin", m.Authenticate(), m.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/browse", m.OptionalAuthenticate(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "signed_in": ok})
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	r := setupAuthTestRouter(t)

	tokens, err := util.GenerateTokenPair(7, "buyer@example.com", "customer", testJWTSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "Valid token",
			header:     "Bearer " + tokens.AccessToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Wrong scheme",
			header:     "Basic " + tokens.AccessToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage token",
			header:     "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	r := setupAuthTestRouter(t)

	tokens, err := util.GenerateTokenPair(7, "buyer@example.com", "customer", testJWTSecret, time.Nanosecond, time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestOptionalAuthenticate(t *testing.T) {
	r := setupAuthTestRouter(t)

	tokens, err := util.GenerateTokenPair(7, "buyer@example.com", "customer", testJWTSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	// guest browsing succeeds without identity
	req := httptest.NewRequest(http.MethodGet, "/browse", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"signed_in":false`)

	// a valid token attaches identity
	req = httptest.NewRequest(http.MethodGet, "/browse", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"signed_in":true`)
	assert.Contains(t, w.Body.String(), `"user_id":7`)

	// a bad token degrades to guest instead of failing the request
	req = httptest.NewRequest(http.MethodGet, "/browse", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"signed_in":false`)
}

func TestRequireRole(t *testing.T) {
	r := setupAuthTestRouter(t)

	adminTokens, err := util.GenerateTokenPair(1, "admin@example.com", "admin", testJWTSecret, time.Minute, time.Hour)
	require.NoError(t, err)
	customerTokens, err := util.GenerateTokenPair(2, "buyer@example.com", "customer", testJWTSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminTokens.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+customerTokens.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
