package races

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRejectsMissingEvent(t *testing.T) {
	now := time.Now()

	for _, in := range []Input{{}, {Event: "   "}, {Event: "", Date: "2022-07-29"}} {
		_, _, ok := Normalize(in, now)
		assert.False(t, ok)
	}
}

func TestNormalizeDerivesSecondsFromFormattedTime(t *testing.T) {
	now := time.Now()

	race, defaulted, ok := Normalize(Input{
		Event:   "Lakeland 100",
		Date:    "29-07-2022",
		TimeHms: "34:36:56",
		Type:    "Ultra",
	}, now)
	require.True(t, ok)
	assert.False(t, defaulted)
	require.NotNil(t, race.TimeSeconds)
	assert.Equal(t, 124616, *race.TimeSeconds)
	assert.Equal(t, "2022-07-29", race.Date.Format("2006-01-02"))
	require.NotNil(t, race.Type)
	assert.Equal(t, "Ultra", *race.Type)
}

func TestNormalizeExplicitSecondsWin(t *testing.T) {
	secs := 100
	race, _, ok := Normalize(Input{Event: "x", TimeSeconds: &secs, TimeHms: "1:00:00"}, time.Now())
	require.True(t, ok)
	assert.Equal(t, 100, *race.TimeSeconds)
}

func TestNormalizeDefaultsUnparsableDate(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

	race, defaulted, ok := Normalize(Input{Event: "x", Date: "sometime in spring"}, now)
	require.True(t, ok)
	assert.True(t, defaulted)
	assert.True(t, race.Date.Equal(now))
}

func TestNormalizeUnwrapsURLs(t *testing.T) {
	race, _, ok := Normalize(Input{
		Event:    "x",
		VideoUrl: "Film||https://youtu.be/dQw4w9WgXcQ",
	}, time.Now())
	require.True(t, ok)
	require.NotNil(t, race.VideoUrl)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", *race.VideoUrl)
}

func TestNormalizeEmptyAfterUnwrapIsNil(t *testing.T) {
	race, _, ok := Normalize(Input{Event: "x", StravaUrl: "Strava||"}, time.Now())
	require.True(t, ok)
	assert.Nil(t, race.StravaUrl)
}

func TestNormalizeAllReportsRejections(t *testing.T) {
	now := time.Now()
	res := NormalizeAll([]Input{
		{Event: "A", Date: "2020-01-01"},
		{Event: ""},
		{Event: "B", Date: "nope"},
	}, now)

	assert.Len(t, res.Races, 2)
	require.Len(t, res.Rejections, 1)
	assert.Equal(t, 1, res.Rejections[0].Index)
	assert.Equal(t, ReasonMissingEvent, res.Rejections[0].Reason)
	assert.Equal(t, 1, res.DefaultedDates)
}
