package races

import (
	"strings"
	"time"

	"github.com/filmmyrun/fmrapi/models"
)

// Input is the loosely-typed external race shape accepted by every ingestion
// path: API sync bodies, spreadsheet rows and the legacy dashboard export.
type Input struct {
	Date        string   `json:"date,omitempty"`
	Event       string   `json:"event"`
	Type        string   `json:"type,omitempty"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
	TimeHms     string   `json:"timeHms,omitempty"`
	TimeSeconds *int     `json:"timeSeconds,omitempty"`
	Elevation   *int     `json:"elevation,omitempty"`
	Position    string   `json:"position,omitempty"`
	Terrain     string   `json:"terrain,omitempty"`
	VideoUrl    string   `json:"videoUrl,omitempty"`
	StravaUrl   string   `json:"stravaUrl,omitempty"`
	ResultsUrl  string   `json:"resultsUrl,omitempty"`
}

// Rejection explains why an input row was dropped during normalization.
type Rejection struct {
	Index  int    `json:"index"`
	Event  string `json:"event,omitempty"`
	Reason string `json:"reason"`
}

const ReasonMissingEvent = "missing required field: event"

// Result is the outcome of normalizing a batch.
type Result struct {
	Races          []*models.Race
	Rejections     []Rejection
	DefaultedDates int
}

// Normalize maps one external record into the canonical Race shape.
// A false second return means the record was rejected; defaulted reports
// whether an absent or unparsable date fell back to now.
//
// The transform is pure apart from reading the clock for the date default;
// persistence is the caller's responsibility.
func Normalize(in Input, now time.Time) (race *models.Race, defaulted bool, ok bool) {
	event := strings.TrimSpace(in.Event)
	if event == "" {
		return nil, false, false
	}

	date, parsed := ParseDate(in.Date)
	if !parsed {
		// Unparsable dates are not fatal: fall back to now. Chronological
		// ordering of such rows is wrong until the source is scrubbed.
		date = now
		defaulted = true
	}

	r := &models.Race{
		Date:       date,
		Event:      event,
		Type:       optional(in.Type),
		DistanceKm: in.DistanceKm,
		TimeHms:    optional(in.TimeHms),
		Elevation:  in.Elevation,
		Position:   optional(in.Position),
		Terrain:    optional(in.Terrain),
		VideoUrl:   optionalURL(in.VideoUrl),
		StravaUrl:  optionalURL(in.StravaUrl),
		ResultsUrl: optionalURL(in.ResultsUrl),
	}

	// An explicit seconds value is the source of truth; otherwise derive it
	// from the formatted time.
	switch {
	case in.TimeSeconds != nil:
		r.TimeSeconds = in.TimeSeconds
	case in.TimeHms != "":
		if secs, ok := ParseDuration(in.TimeHms); ok {
			r.TimeSeconds = &secs
		}
	}

	return r, defaulted, true
}

// NormalizeAll normalizes a batch, collecting rejections by input index
// instead of dropping rows silently.
func NormalizeAll(inputs []Input, now time.Time) Result {
	res := Result{Races: make([]*models.Race, 0, len(inputs))}

	for i, in := range inputs {
		race, defaulted, ok := Normalize(in, now)
		if !ok {
			res.Rejections = append(res.Rejections, Rejection{
				Index:  i,
				Event:  strings.TrimSpace(in.Event),
				Reason: ReasonMissingEvent,
			})
			continue
		}
		if defaulted {
			res.DefaultedDates++
		}
		res.Races = append(res.Races, race)
	}

	return res
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalURL(s string) *string {
	return optional(UnwrapURL(s))
}
