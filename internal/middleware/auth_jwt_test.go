package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosmeshop/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func doRequest(token string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	e.GET("/", handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":      float64(7),
		"role":     "CUSTOMER",
		"approved": true,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	e := echo.New()
	mw := JWTAuth(testSecret)
	var gotID int64
	var gotRole model.Role
	handler := mw(func(c echo.Context) error {
		gotID, _ = c.Get("user_id").(int64)
		gotRole, _ = c.Get("user_role").(model.Role)
		return c.NoContent(http.StatusOK)
	})
	e.GET("/", handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
	assert.Equal(t, model.RoleCustomer, gotRole)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	rec := doRequest("", JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	rec := doRequest(token, JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_WrongSignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	rec := doRequest(s, JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	adminToken := signToken(t, jwt.MapClaims{
		"sub": float64(1), "role": "ADMIN", "approved": true,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	customerToken := signToken(t, jwt.MapClaims{
		"sub": float64(7), "role": "CUSTOMER", "approved": true,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec := doRequest(adminToken, JWTAuth(testSecret), AdminOnly)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(customerToken, JWTAuth(testSecret), AdminOnly)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestApprovedOnly(t *testing.T) {
	pendingToken := signToken(t, jwt.MapClaims{
		"sub": float64(7), "role": "CUSTOMER", "approved": false,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	approvedToken := signToken(t, jwt.MapClaims{
		"sub": float64(7), "role": "CUSTOMER", "approved": true,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec := doRequest(pendingToken, JWTAuth(testSecret), ApprovedOnly)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(approvedToken, JWTAuth(testSecret), ApprovedOnly)
	assert.Equal(t, http.StatusOK, rec.Code)
}
