package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/filmmyrun/fmrapi/models"
	"github.com/filmmyrun/fmrapi/races"
)

// raceJSON is the dashboard wire shape: short aliases, date as YYYY-MM-DD.
type raceJSON struct {
	ID         int      `json:"id"`
	Date       string   `json:"date"`
	Event      string   `json:"event"`
	Type       *string  `json:"type"`
	DistanceKm *float64 `json:"distanceKm"`
	TimeHms    *string  `json:"timeHms"`
	Secs       *int     `json:"secs"`
	Elev       *int     `json:"elev"`
	Pos        *string  `json:"pos"`
	Terrain    *string  `json:"terrain"`
	Video      *string  `json:"video"`
	Strava     *string  `json:"strava"`
	Results    *string  `json:"results"`
}

// raceSummaryJSON is the trimmed shape used by the top-N lists.
type raceSummaryJSON struct {
	ID         int      `json:"id"`
	Date       string   `json:"date"`
	Event      string   `json:"event"`
	Type       *string  `json:"type"`
	DistanceKm *float64 `json:"distanceKm"`
	TimeHms    *string  `json:"timeHms"`
	Secs       *int     `json:"secs"`
}

type dashboardResponse struct {
	OK        bool              `json:"ok"`
	Data      []raceJSON        `json:"data"`
	Marathons []raceSummaryJSON `json:"marathons"`
	Ultras    []raceSummaryJSON `json:"ultras"`
	Years     []int             `json:"years"`
}

const dashboardCacheKey = "dashboard"

// Races returns every race newest-first plus the derived dashboard views:
// ten fastest marathons, ten longest ultras and the distinct years present.
func (h *Handler) Races(c echo.Context) error {
	if cached, ok := h.cache.Get(dashboardCacheKey); ok {
		return c.JSON(http.StatusOK, cached.(*dashboardResponse))
	}

	var all []*models.Race
	err := h.db.NewSelect().Model(&all).OrderExpr("date DESC").Scan(c.Request().Context())
	if err != nil {
		return h.dataError(c, "race dashboard read failed", err)
	}

	resp := &dashboardResponse{
		OK:        true,
		Data:      make([]raceJSON, 0, len(all)),
		Marathons: summarize(races.FastestByType(all, "Marathon", 10)),
		Ultras:    summarize(races.LongestByType(all, "Ultra", 10)),
		Years:     races.DistinctYears(all),
	}
	for _, r := range all {
		resp.Data = append(resp.Data, raceJSON{
			ID:         r.ID,
			Date:       r.Date.Format("2006-01-02"),
			Event:      r.Event,
			Type:       r.Type,
			DistanceKm: r.DistanceKm,
			TimeHms:    r.TimeHms,
			Secs:       r.TimeSeconds,
			Elev:       r.Elevation,
			Pos:        r.Position,
			Terrain:    r.Terrain,
			Video:      r.VideoUrl,
			Strava:     r.StravaUrl,
			Results:    r.ResultsUrl,
		})
	}

	h.cache.SetDefault(dashboardCacheKey, resp)
	return c.JSON(http.StatusOK, resp)
}

func summarize(rs []*models.Race) []raceSummaryJSON {
	out := make([]raceSummaryJSON, 0, len(rs))
	for _, r := range rs {
		out = append(out, raceSummaryJSON{
			ID:         r.ID,
			Date:       r.Date.Format("2006-01-02"),
			Event:      r.Event,
			Type:       r.Type,
			DistanceKm: r.DistanceKm,
			TimeHms:    r.TimeHms,
			Secs:       r.TimeSeconds,
		})
	}
	return out
}

// dataError logs a data-layer failure and returns the structured 500 shape.
// Never a partial success payload.
func (h *Handler) dataError(c echo.Context, msg string, err error) error {
	zap.L().Error(msg, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"ok":    false,
		"error": "internal server error",
	})
}
