package feeds

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0"?>
<rss version="2.0">
<channel>
  <title>Test Feed</title>
  <item>
    <title><![CDATA[Hardrock 100 Preview]]></title>
    <link>https://example.com/hardrock</link>
    <guid isPermaLink="false">hardrock-2024</guid>
    <pubDate>Mon, 08 Jul 2024 10:00:00 +0000</pubDate>
    <description><![CDATA[<p>The <b>toughest</b> hundred.</p>]]></description>
  </item>
  <item>
    <title>Plain Item</title>
    <link>https://example.com/plain</link>
    <pubDate>Tue, 09 Jul 2024 10:00:00 +0000</pubDate>
  </item>
  <item>
    <title>No link so skipped</title>
    <pubDate>Tue, 09 Jul 2024 10:00:00 +0000</pubDate>
  </item>
</channel>
</rss>`

func TestParseRSS(t *testing.T) {
	items := ParseRSS(sampleFeed)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "Hardrock 100 Preview", first.Title)
	assert.Equal(t, "https://example.com/hardrock", first.Link)
	assert.Equal(t, "hardrock-2024", first.Guid)
	require.NotNil(t, first.Description)
	assert.Equal(t, "The toughest hundred.", *first.Description)

	second := items[1]
	assert.Equal(t, "Plain Item", second.Title)
	// guid falls back to link
	assert.Equal(t, "https://example.com/plain", second.Guid)
	assert.Nil(t, second.Description)
}

func TestParseRSSEmpty(t *testing.T) {
	assert.Empty(t, ParseRSS(""))
	assert.Empty(t, ParseRSS("<rss><channel></channel></rss>"))
}

func TestCleanDescriptionCapsLength(t *testing.T) {
	long := strings.Repeat("a", 600)
	assert.Len(t, cleanDescription(long), 500)
}

func TestCleanDescriptionCapOnRuneBoundary(t *testing.T) {
	// A two-byte rune straddling the cap must be dropped whole, never split.
	long := strings.Repeat("a", 499) + "é" + strings.Repeat("b", 100)
	got := cleanDescription(long)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 499), got)

	multi := strings.Repeat("é", 400)
	got = cleanDescription(multi)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 250), got)
}

func TestParsePubDateVariants(t *testing.T) {
	for _, s := range []string{
		"Mon, 08 Jul 2024 10:00:00 +0000",
		"Mon, 8 Jul 2024 10:00:00 GMT",
	} {
		_, err := parsePubDate(s)
		assert.NoError(t, err, "pubDate %q", s)
	}

	_, err := parsePubDate("last tuesday")
	assert.Error(t, err)
}
