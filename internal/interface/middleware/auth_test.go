package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugouthq/dugout/pkg/helpers"
)

func authTestRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString(CtxUserIDKey)})
	})
	return r
}

func TestAuthMissingHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("a", "r", 15*time.Minute, time.Hour)
	r := authTestRouter(jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("a", "r", 15*time.Minute, time.Hour)
	r := authTestRouter(jwt)

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "tokenwithoutscheme"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("a", "r", 15*time.Minute, time.Hour)
	r := authTestRouter(jwt)

	access, _, err := jwt.GenerateAccessToken("user-1", "Demo Fan")
	require.NoError(t, err)

	for _, token := range []string{"garbage", access + "x"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	expired := helpers.NewJWTManager("a", "r", -time.Minute, time.Hour)
	access, _, err := expired.GenerateAccessToken("user-1", "Demo Fan")
	require.NoError(t, err)

	r := authTestRouter(helpers.NewJWTManager("a", "r", 15*time.Minute, time.Hour))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthValidTokenSetsIdentity(t *testing.T) {
	jwt := helpers.NewJWTManager("a", "r", 15*time.Minute, time.Hour)
	r := authTestRouter(jwt)

	access, _, err := jwt.GenerateAccessToken("user-1", "Demo Fan")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}
