package races

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateFormats(t *testing.T) {
	want := time.Date(2022, time.July, 2, 0, 0, 0, 0, time.UTC)

	for _, s := range []string{"2022-07-02", "02/07/2022", "02-07-2022"} {
		got, ok := ParseDate(s)
		require.True(t, ok, "expected %q to parse", s)
		assert.True(t, got.Equal(want), "%q parsed to %v, want %v", s, got, want)
	}
}

func TestParseDateNoMatch(t *testing.T) {
	for _, s := range []string{"", "yesterday", "2022/07/02", "7-2-2022", "29-7-2022"} {
		_, ok := ParseDate(s)
		assert.False(t, ok, "expected %q not to parse", s)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"11:16:17", 40577},
		{"34:36:56", 124616},
		{"0:05:30", 330},
		{"1h 2m 3s", 3723},
		{"1H2M3S", 3723},
	}
	for _, c := range cases {
		got, ok := ParseDuration(c.in)
		require.True(t, ok, "expected %q to parse", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseDurationNoMatch(t *testing.T) {
	for _, s := range []string{"", "fast", "12:3", "90 minutes"} {
		_, ok := ParseDuration(s)
		assert.False(t, ok, "expected %q not to parse", s)
	}
}

func TestUnwrapURL(t *testing.T) {
	assert.Equal(t, "https://youtu.be/abc", UnwrapURL("Watch||https://youtu.be/abc"))
	assert.Equal(t, "https://youtu.be/abc", UnwrapURL("Watch|| https://youtu.be/abc "))
	assert.Equal(t, "https://youtu.be/abc", UnwrapURL("https://youtu.be/abc"))
}

func TestUnwrapURLIdempotent(t *testing.T) {
	for _, s := range []string{"plain", "https://example.com/x", ""} {
		once := UnwrapURL(s)
		assert.Equal(t, once, UnwrapURL(once))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "11:16:17", FormatDuration(40577))
	assert.Equal(t, "5:30", FormatDuration(330))
	assert.Equal(t, "0:09", FormatDuration(9))
}
