package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lead-analytics/internal/api/middleware"
)

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(publicPEM)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	key, publicPEM := generateKey(t)
	otherKey, _ := generateKey(t)

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"", "key-one", "key-two"},
	})
	require.NoError(t, err)

	valid := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "ops@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := signToken(t, key, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	notYetValid := signToken(t, key, jwt.RegisteredClaims{
		NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	wrongKey := signToken(t, otherKey, jwt.RegisteredClaims{Subject: "intruder"})
	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		success  bool
		authType string
		subject  string
	}{
		{"valid jwt", "Bearer " + valid, true, middleware.AUTH_TYPE_JWT, "ops@example.com"},
		{"lowercase scheme", "bearer " + valid, true, middleware.AUTH_TYPE_JWT, "ops@example.com"},
		{"api key", "ApiKey key-two", true, middleware.AUTH_TYPE_APIKEY, ""},
		{"unknown api key", "ApiKey key-three", false, "", ""},
		{"empty api key", "ApiKey ", false, "", ""},
		{"expired jwt", "Bearer " + expired, false, "", ""},
		{"jwt not yet valid", "Bearer " + notYetValid, false, "", ""},
		{"jwt signed by another key", "Bearer " + wrongKey, false, "", ""},
		{"hmac jwt", "Bearer " + hmac, false, "", ""},
		{"missing header", "", false, "", ""},
		{"no scheme", valid, false, "", ""},
		{"unsupported scheme", "Basic dXNlcjpwYXNz", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := auth.Authenticate(tt.header)
			assert.Equal(t, tt.success, result.Success)
			if tt.success {
				assert.Equal(t, tt.authType, result.AuthType)
				assert.Equal(t, tt.subject, result.AuthSubject)
			} else {
				assert.Error(t, result.Error)
			}
		})
	}
}

func TestAuthenticateWithoutCredentialsConfigured(t *testing.T) {
	key, _ := generateKey(t)
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{})
	require.NoError(t, err)

	result := auth.Authenticate("Bearer " + signToken(t, key, jwt.RegisteredClaims{}))
	assert.False(t, result.Success)
	assert.EqualError(t, result.Error, "JWT public key not configured")

	result = auth.Authenticate("ApiKey anything")
	assert.False(t, result.Success)
	assert.EqualError(t, result.Error, "no API keys configured")
}

func TestNewAuthenticator_InvalidKey(t *testing.T) {
	_, err := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: "not a pem"})
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{"secret"}})
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/private", middleware.Auth(auth), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(middleware.AUTH_TYPE_KEY)))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.REQUEST_ID_HEADER))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "ApiKey secret")
	req.Header.Set(middleware.REQUEST_ID_HEADER, "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.AUTH_TYPE_APIKEY, w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(middleware.REQUEST_ID_HEADER))
}
