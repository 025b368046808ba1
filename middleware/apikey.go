package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIKeyHeader carries the pre-shared key on bulk sync requests.
const APIKeyHeader = "X-API-Key"

// APIKey returns an Echo middleware that compares the X-API-Key header
// against the configured secret in constant time. An empty configured secret
// rejects everything rather than opening the endpoint.
func APIKey(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "sync key not configured")
			}

			got := c.Request().Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			return next(c)
		}
	}
}
