package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race represents one completed running event.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:r"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	Date        time.Time `bun:"date,notnull,type:date" json:"date"`
	Event       string    `bun:"event,notnull" json:"event"`
	Type        *string   `bun:"type" json:"type,omitempty"`
	DistanceKm  *float64  `bun:"distance_km" json:"distanceKm,omitempty"`
	TimeHms     *string   `bun:"time_hms" json:"timeHms,omitempty"`
	TimeSeconds *int      `bun:"time_seconds" json:"timeSeconds,omitempty"`
	Elevation   *int      `bun:"elevation" json:"elevation,omitempty"`
	Position    *string   `bun:"position" json:"position,omitempty"`
	Terrain     *string   `bun:"terrain" json:"terrain,omitempty"`
	VideoUrl    *string   `bun:"video_url" json:"videoUrl,omitempty"`
	StravaUrl   *string   `bun:"strava_url" json:"stravaUrl,omitempty"`
	ResultsUrl  *string   `bun:"results_url" json:"resultsUrl,omitempty"`
}
