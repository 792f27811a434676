package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minishop/store-api/internal/api/metrics"
	"github.com/minishop/store-api/internal/core/service"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxClaims = "claims"
)

// Auth validates the bearer token and injects the verified identity into
// the request context. It is a pure gate: no mutation beyond the context.
func Auth(tokens *service.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.AuthFailuresTotal.WithLabelValues("bad_header").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(verifyFailureReason(err)).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxClaims, claims)

			return next(c)
		}
	}
}

func verifyFailureReason(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenSignature):
		return "signature"
	case errors.Is(err, service.ErrTokenExpired):
		return "expired"
	default:
		return "malformed"
	}
}
