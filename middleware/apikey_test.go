package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callWithKey(t *testing.T, secret, key string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return APIKey(secret)(next)(c)
}

func TestAPIKeyAccepts(t *testing.T) {
	assert.NoError(t, callWithKey(t, "s3cret", "s3cret"))
}

func TestAPIKeyRejectsWrongKey(t *testing.T) {
	err := callWithKey(t, "s3cret", "nope")
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAPIKeyRejectsMissingKey(t *testing.T) {
	err := callWithKey(t, "s3cret", "")
	require.Error(t, err)
}

func TestAPIKeyRejectsWhenUnconfigured(t *testing.T) {
	err := callWithKey(t, "", "anything")
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
