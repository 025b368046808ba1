package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmmyrun/fmrapi/feeds"
	"github.com/filmmyrun/fmrapi/models"
)

// NewsSyncAuth guards the news sync endpoint: a cron secret passed as a query
// parameter. An empty configured secret leaves the endpoint open, which is
// acceptable only in development.
func NewsSyncAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret != "" {
				got := c.QueryParam("secret")
				if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
				}
			}
			return next(c)
		}
	}
}

// SyncNews fetches all configured RSS feeds and upserts recent articles.
// Per-feed failures are reported but do not abort the run.
func (h *Handler) SyncNews(c echo.Context) error {
	report := feeds.NewFetcher(h.db).FetchAndStore(c.Request().Context())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":        true,
		"fetched":   report.Fetched,
		"stored":    report.Stored,
		"errors":    report.Errors,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// News lists the most recent articles, newest first.
func (h *Handler) News(c echo.Context) error {
	var articles []models.Article
	err := h.db.NewSelect().Model(&articles).
		OrderExpr("pub_date DESC").
		Limit(100).
		Scan(c.Request().Context())
	if err != nil {
		return h.dataError(c, "news read failed", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":       true,
		"articles": articles,
	})
}
