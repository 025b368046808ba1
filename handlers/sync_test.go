package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postSync(t *testing.T, body string) error {
	t.Helper()
	h := New(nil, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/races/sync", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return h.SyncRaces(e.NewContext(req, rec))
}

func TestSyncRacesRejectsUnknownMode(t *testing.T) {
	err := postSync(t, `{"races": [], "mode": "upsert"}`)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestSyncRacesRejectsMalformedBody(t *testing.T) {
	err := postSync(t, `{"races": "not-an-array"}`)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
