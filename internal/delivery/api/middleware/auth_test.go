package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasker/internal/delivery/api/response"
	"tasker/internal/domain/policy"
	"tasker/internal/domain/service"
	mockService "tasker/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) (*echo.Echo, *mockService.MockTokenService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := mockService.NewMockTokenService(t)
	auth := NewAuthMiddleware(tokens, policy.NewOwnerGuard(), logger)

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError

	e.GET("/me", func(c echo.Context) error {
		claims, ok := GetClaims(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}

		return c.String(http.StatusOK, claims.UserID)
	}, auth.Authenticate)

	e.GET("/owners/:user_id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, auth.Authenticate, auth.RequireOwner("user_id"))

	return e, tokens
}

func serve(e *echo.Echo, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *response.ErrorInfo {
	t.Helper()

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return body.Error
}

func TestAuthenticate_RejectsMissingOrMalformedHeader(t *testing.T) {
	e, _ := newTestEcho(t)

	// The strict token mock fails the test if Verify is reached.
	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic dXNlcjpwYXNz", "token-without-scheme"} {
		rec := serve(e, "/me", header)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate), header)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code)
	}
}

func TestAuthenticate_RejectsInvalidToken(t *testing.T) {
	e, tokens := newTestEcho(t)
	tokens.EXPECT().Verify("forged").Return(nil, false)

	rec := serve(e, "/me", "Bearer forged")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	assert.Nil(t, decodeError(t, rec).Details)
}

func TestAuthenticate_StoresClaims(t *testing.T) {
	e, tokens := newTestEcho(t)
	userID := uuid.New()
	tokens.EXPECT().Verify("good").Return(&service.Claims{
		UserID:    userID.String(),
		Email:     "alice@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}, true)

	rec := serve(e, "/me", "bearer good")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestRequireOwner(t *testing.T) {
	alice := uuid.New().String()
	bob := uuid.New().String()

	tests := []struct {
		name       string
		pathOwner  string
		wantStatus int
		wantCode   string
	}{
		{name: "owner matches", pathOwner: alice, wantStatus: http.StatusOK},
		{name: "other owner", pathOwner: bob, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "not a uuid", pathOwner: "not-a-uuid", wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, tokens := newTestEcho(t)
			tokens.EXPECT().Verify("alice-token").Return(&service.Claims{UserID: alice, Email: "alice@example.com"}, true)

			rec := serve(e, "/owners/"+tt.pathOwner, "Bearer alice-token")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				errInfo := decodeError(t, rec)
				assert.Equal(t, tt.wantCode, errInfo.Code)
				assert.Equal(t, "Access denied: user ID mismatch", errInfo.Message)
				assert.Empty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
			}
		})
	}
}

func TestRequireOwner_UnauthenticatedIs401(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auth := NewAuthMiddleware(mockService.NewMockTokenService(t), policy.NewOwnerGuard(), logger)

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError
	// RequireOwner without Authenticate in front: no claims on the context.
	e.GET("/owners/:user_id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, auth.RequireOwner("user_id"))

	rec := serve(e, "/owners/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	token, ok = bearerToken("  BEARER   abc  ")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = bearerToken("Token abc")
	assert.False(t, ok)
}
