package races

import (
	"sort"
	"time"

	"github.com/filmmyrun/fmrapi/models"
)

// FastestByType returns the n fastest races of the given type, ascending by
// time. Races without a recorded time are excluded. Ties keep input order.
func FastestByType(all []*models.Race, raceType string, n int) []*models.Race {
	return topByTime(all, raceType, n, false)
}

// LongestByType returns the n longest races of the given type, descending by
// time ("longest ultra" reads: most time on feet).
func LongestByType(all []*models.Race, raceType string, n int) []*models.Race {
	return topByTime(all, raceType, n, true)
}

func topByTime(all []*models.Race, raceType string, n int, desc bool) []*models.Race {
	filtered := make([]*models.Race, 0, len(all))
	for _, r := range all {
		if r.TimeSeconds == nil || r.Type == nil || *r.Type != raceType {
			continue
		}
		filtered = append(filtered, r)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if desc {
			return *filtered[i].TimeSeconds > *filtered[j].TimeSeconds
		}
		return *filtered[i].TimeSeconds < *filtered[j].TimeSeconds
	})

	if len(filtered) > n {
		filtered = filtered[:n]
	}
	return filtered
}

// DistinctYears extracts the calendar years present in the set, de-duplicated
// and sorted descending.
func DistinctYears(all []*models.Race) []int {
	seen := map[int]bool{}
	for _, r := range all {
		seen[r.Date.Year()] = true
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// featuredEpoch bounds the eligible set for the daily rotation: only races
// from 2018 onwards carry watchable film footage.
var featuredEpoch = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)

// EligibleFilms filters to Ultra races with a video URL from the featured
// epoch onwards, newest first. This is the candidate set for both the film
// gallery and the daily featured rotation.
func EligibleFilms(all []*models.Race) []*models.Race {
	out := make([]*models.Race, 0, len(all))
	for _, r := range all {
		if r.Type == nil || *r.Type != "Ultra" {
			continue
		}
		if r.VideoUrl == nil || *r.VideoUrl == "" {
			continue
		}
		if r.Date.Before(featuredEpoch) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// FeaturedIndex selects today's featured race as day-of-year modulo the
// eligible count. Every request within one calendar day picks the same race,
// and the rotation cycles evenly through the set; this is deterministic by
// requirement, not a random pick.
func FeaturedIndex(now time.Time, eligible int) int {
	if eligible <= 0 {
		return -1
	}
	return now.YearDay() % eligible
}
