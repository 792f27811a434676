package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minishop/store-api/internal/api/metrics"
)

// Owns reports whether the authenticated caller may mutate the target
// resource. The rule is strict equality of identifiers: a user may only
// modify their own record. Kept transport-free so it can be tested without
// a server.
func Owns(callerID, targetID string) bool {
	return callerID != "" && callerID == targetID
}

// RequireOwner rejects requests whose authenticated identity does not match
// the path parameter named param. Must run after Auth.
func RequireOwner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			callerID, _ := c.Get(CtxUserID).(string)
			if !Owns(callerID, c.Param(param)) {
				metrics.AuthFailuresTotal.WithLabelValues("ownership").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "you are not allowed to modify this resource")
			}
			return next(c)
		}
	}
}
