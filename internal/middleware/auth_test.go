package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret-key-32-characters")

func signToken(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"uid":  "42",
		"role": "user",
		"aud":  "recipe-web",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", OAuth2Auth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   GetUserID(c),
			"role":      c.GetString(ContextUserRole),
			"client_id": c.GetString(ContextClientID),
		})
	})
	router.GET("/admin", OAuth2Auth(testSecret), RequireStaff(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func doRequest(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOAuth2AuthAcceptsValidToken(t *testing.T) {
	router := newAuthRouter()
	token := signToken(t, validClaims(), jwt.SigningMethodHS512, testSecret)

	w := doRequest(router, "/me", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["user_id"])
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, "recipe-web", body["client_id"])
}

func TestOAuth2AuthRejections(t *testing.T) {
	router := newAuthRouter()

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	noExp := validClaims()
	delete(noExp, "exp")

	noUID := validClaims()
	delete(noUID, "uid")

	badRole := validClaims()
	badRole["role"] = "superchef"

	testCases := []struct {
		name          string
		authorization string
		errorCode     string
	}{
		{"missing header", "", "authorization_required"},
		{"wrong scheme", "Basic abc", "invalid_request"},
		{"empty token", "Bearer ", "invalid_token"},
		{"garbage token", "Bearer not.a.jwt", "invalid_token"},
		{"wrong secret", "Bearer " + signToken(t, validClaims(), jwt.SigningMethodHS512, []byte("other")), "invalid_token"},
		{"expired", "Bearer " + signToken(t, expired, jwt.SigningMethodHS512, testSecret), "invalid_token"},
		{"no exp", "Bearer " + signToken(t, noExp, jwt.SigningMethodHS512, testSecret), "invalid_token"},
		{"no uid", "Bearer " + signToken(t, noUID, jwt.SigningMethodHS512, testSecret), "invalid_token"},
		{"unknown role", "Bearer " + signToken(t, badRole, jwt.SigningMethodHS512, testSecret), "invalid_token"},
		{"none algorithm", "Bearer " + signToken(t, validClaims(), jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType), "invalid_token"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "/me", tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.errorCode, body["error"])
		})
	}
}

func TestRequireStaff(t *testing.T) {
	router := newAuthRouter()

	w := doRequest(router, "/admin", "Bearer "+signToken(t, validClaims(), jwt.SigningMethodHS512, testSecret))
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := validClaims()
	admin["role"] = "admin"
	w = doRequest(router, "/admin", "Bearer "+signToken(t, admin, jwt.SigningMethodHS512, testSecret))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", RequireStaff(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := doRequest(router, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
