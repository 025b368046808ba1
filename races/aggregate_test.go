package races

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmmyrun/fmrapi/models"
)

func race(event, raceType string, secs int, date time.Time) *models.Race {
	return &models.Race{Event: event, Type: &raceType, TimeSeconds: &secs, Date: date}
}

func TestFastestByTypeTakesSmallestAscending(t *testing.T) {
	var all []*models.Race
	// 15 marathons with distinct times, inserted out of order.
	for _, secs := range []int{12000, 11000, 15000, 10100, 14000, 10500, 13000,
		10200, 12500, 10900, 11500, 10300, 14500, 10700, 13500} {
		all = append(all, race("m", "Marathon", secs, time.Now()))
	}
	all = append(all, race("u", "Ultra", 9000, time.Now()))
	all = append(all, &models.Race{Event: "no time", Type: strPtr("Marathon")})

	top := FastestByType(all, "Marathon", 10)
	require.Len(t, top, 10)
	prev := 0
	for _, r := range top {
		assert.Greater(t, *r.TimeSeconds, prev)
		prev = *r.TimeSeconds
	}
	assert.Equal(t, 10100, *top[0].TimeSeconds)
	assert.Equal(t, 12000, *top[9].TimeSeconds)
}

func TestLongestByTypeDescending(t *testing.T) {
	all := []*models.Race{
		race("a", "Ultra", 100, time.Now()),
		race("b", "Ultra", 300, time.Now()),
		race("c", "Ultra", 200, time.Now()),
	}
	top := LongestByType(all, "Ultra", 2)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Event)
	assert.Equal(t, "c", top[1].Event)
}

func TestTopByTimeStableOnTies(t *testing.T) {
	all := []*models.Race{
		race("first", "Marathon", 100, time.Now()),
		race("second", "Marathon", 100, time.Now()),
	}
	top := FastestByType(all, "Marathon", 2)
	require.Len(t, top, 2)
	assert.Equal(t, "first", top[0].Event)
}

func TestDistinctYears(t *testing.T) {
	all := []*models.Race{
		{Event: "a", Date: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)},
		{Event: "b", Date: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Event: "c", Date: time.Date(2020, 9, 9, 0, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, []int{2022, 2020}, DistinctYears(all))
}

func TestEligibleFilmsFilters(t *testing.T) {
	video := "https://youtu.be/dQw4w9WgXcQ"
	old := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	all := []*models.Race{
		{Event: "too old", Type: strPtr("Ultra"), VideoUrl: &video, Date: old},
		{Event: "recent", Type: strPtr("Ultra"), VideoUrl: &video, Date: recent},
		{Event: "no video", Type: strPtr("Ultra"), Date: recent},
		{Event: "marathon", Type: strPtr("Marathon"), VideoUrl: &video, Date: recent},
		{Event: "newer", Type: strPtr("Ultra"), VideoUrl: &video, Date: newer},
	}

	films := EligibleFilms(all)
	require.Len(t, films, 2)
	assert.Equal(t, "newer", films[0].Event)
	assert.Equal(t, "recent", films[1].Event)
}

func TestFeaturedIndexDeterministicWithinDay(t *testing.T) {
	morning := time.Date(2024, 8, 30, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 8, 30, 22, 59, 0, 0, time.UTC)
	assert.Equal(t, FeaturedIndex(morning, 7), FeaturedIndex(evening, 7))

	nextDay := morning.AddDate(0, 0, 1)
	assert.NotEqual(t, FeaturedIndex(morning, 7), FeaturedIndex(nextDay, 7))

	assert.Equal(t, -1, FeaturedIndex(morning, 0))
}

func strPtr(s string) *string { return &s }
