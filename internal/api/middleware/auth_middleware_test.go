package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/qikpos/pos-platform/internal/api/middleware"
	"github.com/qikpos/pos-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signingKey = []byte("test-signing-key")

func issueToken(t *testing.T, role models.UserRole, expiresAt time.Time) string {
	t.Helper()

	claims := &models.Claims{
		UserID: "u1",
		Name:   "Admin User",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	require.NoError(t, err)

	return token
}

func TestAuthenticate(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(signingKey)

	okHandler := func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok, "claims should be present after authentication")
		assert.Equal(t, "u1", claims.UserID)
		w.WriteHeader(http.StatusOK)
	}

	t.Run("Success - Valid Token", func(t *testing.T) {
		// Arrange
		token := issueToken(t, models.RoleAdmin, time.Now().Add(time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Failure - Missing Header", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Authorization header is required")
	})

	t.Run("Failure - Malformed Header", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Token abc123")
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid authorization format")
	})

	t.Run("Failure - Wrong Signing Key", func(t *testing.T) {
		// Arrange
		claims := &models.Claims{
			UserID: "u1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-key"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Failure - Expired Token", func(t *testing.T) {
		// Arrange
		token := issueToken(t, models.RoleAdmin, time.Now().Add(-time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(signingKey)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	chain := authMiddleware.Authenticate(authMiddleware.RequireAdmin(okHandler))

	t.Run("Success - Admin Passes", func(t *testing.T) {
		// Arrange
		token := issueToken(t, models.RoleAdmin, time.Now().Add(time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		// Act
		chain.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Failure - Staff Forbidden", func(t *testing.T) {
		// Arrange
		token := issueToken(t, models.RoleStaff, time.Now().Add(time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		// Act
		chain.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Admin role required")
	})

	t.Run("Failure - No Claims In Context", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		rec := httptest.NewRecorder()

		// Act
		authMiddleware.RequireAdmin(okHandler).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
