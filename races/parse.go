// Package races consolidates the race normalization and aggregation pipeline:
// field parsing, record normalization, derived views and the daily featured
// rotation. Every ingestion path (API sync, spreadsheet import, seed scripts)
// goes through this package so the parsing rules cannot drift between callers.
package races

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDateRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dashDateRe  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

	hmsRe  = regexp.MustCompile(`^\d+:\d{2}:\d{2}$`)
	freeRe = regexp.MustCompile(`(?i)(\d+)h\s*(\d+)m\s*(\d+)s`)
)

// ParseDate parses YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY, trying the patterns
// in that order. All three forms of the same calendar date parse equal.
// Returns false when no pattern matches; unparsable dates are a caller policy
// decision, not an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	switch {
	case isoDateRe.MatchString(s):
		t, err := time.Parse("2006-01-02", s)
		return t, err == nil
	case slashDateRe.MatchString(s):
		t, err := time.Parse("02/01/2006", s)
		return t, err == nil
	case dashDateRe.MatchString(s):
		t, err := time.Parse("02-01-2006", s)
		return t, err == nil
	}
	return time.Time{}, false
}

// ParseDuration converts "H:MM:SS" (any number of hour digits) or "XhYmZs"
// free text into total whole seconds. Returns false on no match.
func ParseDuration(s string) (int, bool) {
	s = strings.TrimSpace(s)

	if hmsRe.MatchString(s) {
		var h, m, sec int
		if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
			return 0, false
		}
		return h*3600 + m*60 + sec, true
	}

	if m := freeRe.FindStringSubmatch(s); m != nil {
		var h, min, sec int
		fmt.Sscanf(m[1], "%d", &h)
		fmt.Sscanf(m[2], "%d", &min)
		fmt.Sscanf(m[3], "%d", &sec)
		return h*3600 + min*60 + sec, true
	}

	return 0, false
}

// UnwrapURL extracts the URL from a "label||url" composite. Strings without
// the delimiter pass through unchanged, so the function is idempotent on them.
func UnwrapURL(s string) string {
	if i := strings.Index(s, "||"); i >= 0 {
		return strings.TrimSpace(s[i+2:])
	}
	return s
}

// FormatDuration renders seconds as H:MM:SS, or M:SS under an hour.
func FormatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
