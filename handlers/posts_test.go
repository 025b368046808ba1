package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDeriveExcerptStripsMarkup(t *testing.T) {
	got := DeriveExcerpt("<p>Running <b>far</b>   and\nwide.</p>", 200)
	assert.Equal(t, "Running far and wide.", got)
}

func TestDeriveExcerptTruncatesOnWordBoundary(t *testing.T) {
	content := strings.Repeat("word ", 100)
	got := DeriveExcerpt(content, 50)
	assert.LessOrEqual(t, len(got), 51+len("…"))
	assert.True(t, strings.HasSuffix(got, "…"))
	fields := strings.Fields(strings.TrimSuffix(got, "…"))
	assert.Equal(t, "word", fields[len(fields)-1], "truncation must not split a word")
}

func TestDeriveExcerptCapOnRuneBoundary(t *testing.T) {
	// No spaces before the cap, so the byte limit itself must not split a rune.
	content := strings.Repeat("é", 40)
	got := DeriveExcerpt(content, 51)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 25)+"…", got)
}

func TestEmbeddedVideoID(t *testing.T) {
	content := `<p>Race film:</p><iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ"></iframe>`
	assert.Equal(t, "dQw4w9WgXcQ", embeddedVideoID(content))

	assert.Equal(t, "", embeddedVideoID(`<img src="https://example.com/photo.jpg">`))
	assert.Equal(t, "", embeddedVideoID("no embeds here"))
}
