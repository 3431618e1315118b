package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "tasker/internal/delivery/context"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/policy"
	"tasker/internal/domain/service"
	logs "tasker/internal/infra/log"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	contextKeyClaims = "claims"
	bearerScheme     = "bearer"
)

// AuthMiddleware binds bearer tokens to requests and enforces path ownership.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	guard    *policy.OwnerGuard
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, guard *policy.OwnerGuard, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, guard: guard, logger: logger}
}

// Authenticate verifies the bearer token and stores its claims on the context.
// Every failure is the same 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return m.reject(c, "missing_or_malformed_header")
		}

		claims, ok := m.tokenSvc.Verify(token)
		if !ok {
			return m.reject(c, "invalid_token")
		}

		c.Set(contextKeyClaims, claims)
		deliverycontext.BindUser(c, m.logger, claims.UserID)

		return next(c)
	}
}

// RequireOwner compares the path parameter named param with the authenticated
// identity. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireOwner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := GetClaims(c)
			pathOwnerID := c.Param(param)

			if err := m.guard.Authorize(pathOwnerID, claims); err != nil {
				if errors.Is(err, domainerrors.ErrForbidden) {
					logs.Security(c.Request().Context(), m.log(c), logs.EventAccessDenied,
						slog.String("userID", claims.UserID),
						slog.String("pathOwnerID", pathOwnerID),
						slog.String("method", c.Request().Method),
						slog.String("path", c.Path()),
					)
				}

				return err
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) reject(c echo.Context, reason string) error {
	logs.Security(c.Request().Context(), m.log(c), logs.EventTokenRejected,
		slog.String("reason", reason),
		slog.String("method", c.Request().Method),
		slog.String("path", c.Request().URL.Path),
	)

	return errors.WithStack(domainerrors.ErrUnauthorized)
}

func (m *AuthMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

// bearerToken extracts the token from "Bearer <token>". The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}

// GetClaims returns the claims stored by Authenticate.
func GetClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(contextKeyClaims).(*service.Claims)

	return claims, ok && claims != nil
}
