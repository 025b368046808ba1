package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func callNewsSync(secret, query string) int {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/news/sync"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := NewsSyncAuth(secret)(next)(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return he.Code
		}
		return http.StatusInternalServerError
	}
	return rec.Code
}

func TestNewsSyncAuth(t *testing.T) {
	assert.Equal(t, http.StatusOK, callNewsSync("s3cret", "?secret=s3cret"))
	assert.Equal(t, http.StatusUnauthorized, callNewsSync("s3cret", "?secret=wrong"))
	assert.Equal(t, http.StatusUnauthorized, callNewsSync("s3cret", ""))

	// no secret configured means open access, for local development
	assert.Equal(t, http.StatusOK, callNewsSync("", ""))
}
