package feeds

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Item is one RSS entry, as scraped from the feed body.
type Item struct {
	Title       string
	Link        string
	Description *string
	PubDate     string
	Guid        string
}

const descriptionLimit = 500

var (
	itemRe = regexp.MustCompile(`(?is)<item>(.*?)</item>`)
	tagRe  = regexp.MustCompile(`<[^>]*>`)

	tagPatterns = compileTagPatterns("title", "link", "pubDate", "guid", "description")
)

type tagPattern struct {
	cdata *regexp.Regexp
	plain *regexp.Regexp
}

func compileTagPatterns(tags ...string) map[string]tagPattern {
	out := make(map[string]tagPattern, len(tags))
	for _, tag := range tags {
		out[tag] = tagPattern{
			cdata: regexp.MustCompile(`(?is)<` + tag + `[^>]*><!\[CDATA\[(.*?)\]\]></` + tag + `>`),
			plain: regexp.MustCompile(`(?is)<` + tag + `[^>]*>(.*?)</` + tag + `>`),
		}
	}
	return out
}

// ParseRSS extracts items from a feed body. Items need a title, link and
// pubDate; the guid falls back to the link when absent.
func ParseRSS(xml string) []Item {
	var items []Item

	for _, m := range itemRe.FindAllStringSubmatch(xml, -1) {
		block := m[1]

		title := tagValue(block, "title")
		link := tagValue(block, "link")
		pubDate := tagValue(block, "pubDate")
		if title == "" || link == "" || pubDate == "" {
			continue
		}

		item := Item{Title: title, Link: link, PubDate: pubDate, Guid: link}
		if guid := tagValue(block, "guid"); guid != "" {
			item.Guid = guid
		}
		if desc := cleanDescription(tagValue(block, "description")); desc != "" {
			item.Description = &desc
		}

		items = append(items, item)
	}

	return items
}

// tagValue returns the trimmed content of the first occurrence of tag,
// unwrapping a CDATA section when present. Only tags registered in
// tagPatterns are searchable.
func tagValue(block, tag string) string {
	p, ok := tagPatterns[tag]
	if !ok {
		return ""
	}
	if m := p.cdata.FindStringSubmatch(block); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := p.plain.FindStringSubmatch(block); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func cleanDescription(s string) string {
	s = strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
	if len(s) <= descriptionLimit {
		return s
	}

	// The cap must land on a rune boundary; Postgres rejects text columns
	// holding invalid UTF-8.
	cut := descriptionLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
