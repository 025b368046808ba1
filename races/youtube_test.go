package races

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYouTubeID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=30", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://vimeo.com/12345", ""},
		{"", ""},
		{"short", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, YouTubeID(c.url), "url %q", c.url)
	}
}

func TestThumbnailURL(t *testing.T) {
	assert.Equal(t,
		"https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		ThumbnailURL("dQw4w9WgXcQ"))
}
