package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key-for-testing-only")

func generateTestToken(t *testing.T, userID string, name string, expiresAt time.Time) string {
	t.Helper()

	claims := &JwtClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(testSecret)
	require.NoError(t, err)

	return signedToken
}

func TestNewTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, "http://api.test")
	require.NotNil(t, issuer)
	assert.Equal(t, testSecret, issuer.jwtSecret)
	assert.Equal(t, DefaultTokenTTL, issuer.ttl)
}

func TestTokenIssuer_SignAndVerify(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, "http://api.test")

	t.Run("round trips identity", func(t *testing.T) {
		token, err := issuer.Sign(Identity{Id: "u_42", Name: "octocat", Avatar: "http://avatar"})
		require.NoError(t, err)

		identity, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "u_42", identity.Id)
		assert.Equal(t, "octocat", identity.Name)
		assert.Equal(t, "http://avatar", identity.Avatar)
	})

	t.Run("expired token", func(t *testing.T) {
		token := generateTestToken(t, "u_1", "test", time.Now().Add(-time.Hour))

		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewTokenIssuer([]byte("another-secret"), "http://api.test")
		token, err := other.Sign(Identity{Id: "u_1", Name: "test"})
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token without subject", func(t *testing.T) {
		token := generateTestToken(t, "", "test", time.Now().Add(time.Hour))

		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := issuer.Verify("abcd.abcd.abcd")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestMiddleware(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, "http://api.test")

	var (
		capturedUserID   string
		capturedUserName string
		authenticated    bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID, authenticated = GetUserID(r.Context())
		capturedUserName, _ = GetUserName(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(issuer)(next)

	t.Run("valid token extracts user info", func(t *testing.T) {
		token := generateTestToken(t, "user-123", "octocat", time.Now().Add(time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/api/repos", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, authenticated)
		assert.Equal(t, "user-123", capturedUserID)
		assert.Equal(t, "octocat", capturedUserName)
	})

	t.Run("missing token passes through anonymously", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/repos", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, authenticated)
	})

	t.Run("expired token returns unauthorized", func(t *testing.T) {
		token := generateTestToken(t, "user-123", "octocat", time.Now().Add(-time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/api/repos", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "token has expired", body["error"])
	})

	t.Run("non bearer scheme returns unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/repos", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("returns user ID when present", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, "user-123")
		userID, ok := GetUserID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "user-123", userID)
	})

	t.Run("returns false when not present", func(t *testing.T) {
		userID, ok := GetUserID(context.Background())
		assert.False(t, ok)
		assert.Empty(t, userID)
	})

	t.Run("returns false for wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, 123)
		userID, ok := GetUserID(ctx)
		assert.False(t, ok)
		assert.Empty(t, userID)
	})
}

func TestWithIdentity(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{Id: "u_1", Name: "octocat"})

	userID, ok := GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u_1", userID)

	name, ok := GetUserName(ctx)
	assert.True(t, ok)
	assert.Equal(t, "octocat", name)
}
