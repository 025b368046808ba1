package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmmyrun/fmrapi/models"
	"github.com/filmmyrun/fmrapi/races"
)

type filmJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	VideoID     string    `json:"videoId"`
	Year        string    `json:"year,omitempty"`
	Location    string    `json:"location"`
	Stats       filmStats `json:"stats"`
}

type filmStats struct {
	Distance  string `json:"distance"`
	Elevation string `json:"elevation"`
	Time      string `json:"time"`
}

// film shapes one eligible race for the gallery/featured consumers.
// Returns false when the video URL yields no usable platform ID.
func film(r *models.Race) (filmJSON, bool) {
	videoID := races.YouTubeID(deref(r.VideoUrl))
	if videoID == "" {
		return filmJSON{}, false
	}

	desc := fmt.Sprintf("Experience the challenge of %s", r.Event)
	if r.DistanceKm != nil {
		desc = fmt.Sprintf("%s - %gkm", desc, *r.DistanceKm)
	}
	desc += " of incredible trail running."

	return filmJSON{
		ID:          fmt.Sprintf("%d", r.ID),
		Title:       r.Event,
		Subtitle:    "Ultra Marathon",
		Description: desc,
		Thumbnail:   races.ThumbnailURL(videoID),
		VideoID:     videoID,
		Year:        r.Date.Format("2006"),
		Location:    locationOf(r),
		Stats: filmStats{
			Distance:  statKm(r.DistanceKm),
			Elevation: statM(r.Elevation),
			Time:      statTime(r),
		},
	}, true
}

// Films returns every eligible race shaped as a film, newest first. Rows
// without a recognizable video ID are skipped.
func (h *Handler) Films(c echo.Context) error {
	eligible, err := h.eligibleFilms(c)
	if err != nil {
		return h.dataError(c, "films read failed", err)
	}

	films := make([]filmJSON, 0, len(eligible))
	for _, r := range eligible {
		if f, ok := film(r); ok {
			films = append(films, f)
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":    true,
		"films": films,
		"total": len(films),
	})
}

// FeaturedVideo picks today's film by day-of-year rotation over the eligible
// set. Every request within the same calendar day returns the same race. If
// the rotated pick has no usable video ID, fall back to the first race that
// does.
func (h *Handler) FeaturedVideo(c echo.Context) error {
	eligible, err := h.eligibleFilms(c)
	if err != nil {
		return h.dataError(c, "featured video read failed", err)
	}

	idx := races.FeaturedIndex(h.now(), len(eligible))
	if idx < 0 {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"ok":    false,
			"error": "no featured videos available",
		})
	}

	selected, ok := film(eligible[idx])
	if !ok {
		for _, r := range eligible {
			if f, valid := film(r); valid {
				selected, ok = f, true
				break
			}
		}
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"ok":    false,
			"error": "no valid video URLs found",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok": true,
		"video": map[string]interface{}{
			"title":        selected.Title,
			"subtitle":     selected.Subtitle,
			"description":  selected.Description,
			"videoId":      selected.VideoID,
			"thumbnail":    selected.Thumbnail,
			"year":         selected.Year,
			"location":     selected.Location,
			"stats":        selected.Stats,
			"totalVideos":  len(eligible),
			"currentIndex": idx + 1,
		},
	})
}

// eligibleFilms fetches all races and filters them through the shared
// eligibility rules, so this handler and the dashboard derive from the same
// row set and the rules live in one place.
func (h *Handler) eligibleFilms(c echo.Context) ([]*models.Race, error) {
	var all []*models.Race
	err := h.db.NewSelect().Model(&all).
		OrderExpr("date DESC").
		Scan(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return races.EligibleFilms(all), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func locationOf(r *models.Race) string {
	if r.Terrain != nil && *r.Terrain != "" {
		return *r.Terrain
	}
	return "Trail"
}

func statKm(km *float64) string {
	if km == nil {
		return "N/A"
	}
	return fmt.Sprintf("%gkm", *km)
}

func statM(m *int) string {
	if m == nil {
		return "N/A"
	}
	return fmt.Sprintf("%dm", *m)
}

func statTime(r *models.Race) string {
	if r.TimeHms != nil && *r.TimeHms != "" {
		return *r.TimeHms
	}
	if r.TimeSeconds != nil {
		return races.FormatDuration(*r.TimeSeconds)
	}
	return "N/A"
}
