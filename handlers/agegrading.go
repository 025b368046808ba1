package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/filmmyrun/fmrapi/models"
)

// AgeGrading serves the age-grading reference table in three modes:
// gender+event+age returns one factor, gender+event returns every age for the
// event plus its open record, and no parameters lists the available events
// grouped by gender.
func (h *Handler) AgeGrading(c echo.Context) error {
	gender := c.QueryParam("gender")
	event := c.QueryParam("event")
	ageStr := c.QueryParam("age")
	ctx := c.Request().Context()

	if gender != "" && event != "" && ageStr != "" {
		age, err := strconv.Atoi(ageStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "age must be an integer")
		}

		factor := &models.AgeGradingFactor{}
		err = h.db.NewSelect().Model(factor).
			Where("gender = ? AND event = ? AND age = ?", gender, event, age).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return echo.NewHTTPError(http.StatusNotFound, "factor not found")
			}
			return h.dataError(c, "age grading read failed", err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"gender":     factor.Gender,
			"event":      factor.Event,
			"age":        factor.Age,
			"factor":     factor.Factor,
			"openRecord": factor.OpenRecord,
		})
	}

	if gender != "" && event != "" {
		var factors []models.AgeGradingFactor
		err := h.db.NewSelect().Model(&factors).
			Where("gender = ? AND event = ?", gender, event).
			OrderExpr("age ASC").
			Scan(ctx)
		if err != nil {
			return h.dataError(c, "age grading read failed", err)
		}
		if len(factors) == 0 {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}

		ageFactors := make(map[string]float64, len(factors))
		for _, f := range factors {
			ageFactors[strconv.Itoa(f.Age)] = f.Factor
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"gender":     gender,
			"event":      event,
			"openRecord": factors[0].OpenRecord,
			"ageFactors": ageFactors,
		})
	}

	type eventRow struct {
		Gender     string  `bun:"gender"`
		Event      string  `bun:"event"`
		OpenRecord float64 `bun:"open_record"`
	}
	var rows []eventRow
	err := h.db.NewSelect().
		TableExpr("age_grading_factors").
		ColumnExpr("DISTINCT gender, event, open_record").
		OrderExpr("gender ASC, event ASC").
		Scan(ctx, &rows)
	if err != nil {
		return h.dataError(c, "age grading read failed", err)
	}

	type eventJSON struct {
		Event      string  `json:"event"`
		OpenRecord float64 `json:"openRecord"`
	}
	grouped := map[string][]eventJSON{}
	for _, r := range rows {
		grouped[r.Gender] = append(grouped[r.Gender], eventJSON{Event: r.Event, OpenRecord: r.OpenRecord})
	}

	return c.JSON(http.StatusOK, grouped)
}
