package models

import "github.com/uptrace/bun"

// AgeGradingFactor normalizes a raw performance to an age-and-gender-adjusted
// equivalent. Loaded once by cmd/seedagegrading, read-only at runtime.
type AgeGradingFactor struct {
	bun.BaseModel `bun:"table:age_grading_factors,alias:agf"`

	ID         int     `bun:"id,pk,autoincrement" json:"id"`
	Gender     string  `bun:"gender,notnull" json:"gender"`
	Event      string  `bun:"event,notnull" json:"event"`
	Age        int     `bun:"age,notnull" json:"age"`
	Factor     float64 `bun:"factor,notnull" json:"factor"`
	OpenRecord float64 `bun:"open_record,notnull" json:"openRecord"`
}
