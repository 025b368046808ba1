package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/filmmyrun/fmrapi/models"
	"github.com/filmmyrun/fmrapi/races"
)

type syncRequest struct {
	Races []races.Input `json:"races"`
	Mode  string        `json:"mode" validate:"omitempty,oneof=append replace"`
	// Dedupe skips rows whose (event, date) already exists. Off by default so
	// repeated appends of the same export behave exactly as before.
	Dedupe bool `json:"dedupe,omitempty"`
}

type syncResponse struct {
	OK             bool              `json:"ok"`
	Count          int               `json:"count"`
	Rejected       int               `json:"rejected"`
	DefaultedDates int               `json:"defaultedDates,omitempty"`
	Rejections     []races.Rejection `json:"rejections,omitempty"`
}

// SyncRaces bulk-imports races. Replace mode deletes every existing row and
// inserts the new set in one transaction; a failure anywhere rolls the whole
// replace back. Append mode inserts without deleting.
func (h *Handler) SyncRaces(c echo.Context) error {
	var req syncRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Mode == "" {
		req.Mode = "append"
	}

	res := races.NormalizeAll(req.Races, h.now())

	ctx := c.Request().Context()
	inserted := 0

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if req.Mode == "replace" {
		if _, err := tx.NewDelete().Model((*models.Race)(nil)).Where("TRUE").Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	toInsert := res.Races
	if req.Dedupe && req.Mode == "append" {
		toInsert = toInsert[:0:0]
		for _, r := range res.Races {
			exists, err := tx.NewSelect().Model((*models.Race)(nil)).
				Where("event = ? AND date = ?", r.Event, r.Date).
				Exists(ctx)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			if !exists {
				toInsert = append(toInsert, r)
			}
		}
	}

	if len(toInsert) > 0 {
		if _, err := tx.NewInsert().Model(&toInsert).Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		inserted = len(toInsert)
	}

	if err := tx.Commit(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed = true

	h.cache.Flush()
	zap.L().Info("races synced",
		zap.String("mode", req.Mode),
		zap.Int("inserted", inserted),
		zap.Int("rejected", len(res.Rejections)),
		zap.Int("defaulted_dates", res.DefaultedDates),
	)

	return c.JSON(http.StatusOK, syncResponse{
		OK:             true,
		Count:          inserted,
		Rejected:       len(res.Rejections),
		DefaultedDates: res.DefaultedDates,
		Rejections:     res.Rejections,
	})
}

// ClearRaces deletes every race row under the same sync auth.
func (h *Handler) ClearRaces(c echo.Context) error {
	resDb, err := h.db.NewDelete().Model((*models.Race)(nil)).Where("TRUE").Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, _ := resDb.RowsAffected()
	h.cache.Flush()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":    true,
		"count": count,
	})
}
