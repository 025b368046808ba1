package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/filmmyrun/fmrapi/models"
	"github.com/filmmyrun/fmrapi/races"
)

type postSummaryJSON struct {
	ID            int     `json:"id"`
	Slug          string  `json:"slug"`
	Title         string  `json:"title"`
	Excerpt       string  `json:"excerpt"`
	FeaturedImage *string `json:"featuredImage,omitempty"`
	ReadTime      int     `json:"readTime"`
	PublishedAt   string  `json:"publishedAt"`
}

type postJSON struct {
	postSummaryJSON
	Content string `json:"content"`
	// VideoID is extracted from the first embedded player in the content,
	// using the same helper as the film gallery.
	VideoID string `json:"videoId,omitempty"`
}

// ListPosts returns post summaries newest-first. Excerpts are derived from
// the content when the stored excerpt is empty.
func (h *Handler) ListPosts(c echo.Context) error {
	var posts []models.Post
	err := h.db.NewSelect().Model(&posts).
		OrderExpr("published_at DESC").
		Scan(c.Request().Context())
	if err != nil {
		return h.dataError(c, "posts read failed", err)
	}

	out := make([]postSummaryJSON, 0, len(posts))
	for i := range posts {
		out = append(out, summarizePost(&posts[i]))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":    true,
		"posts": out,
	})
}

// GetPost returns one post by slug, including its content and any embedded
// video ID.
func (h *Handler) GetPost(c echo.Context) error {
	slug := c.Param("slug")

	post := &models.Post{}
	err := h.db.NewSelect().Model(post).
		Where("slug = ?", slug).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return h.dataError(c, "post read failed", err)
	}

	resp := postJSON{
		postSummaryJSON: summarizePost(post),
		Content:         post.Content,
		VideoID:         embeddedVideoID(post.Content),
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":   true,
		"post": resp,
	})
}

func summarizePost(p *models.Post) postSummaryJSON {
	excerpt := ""
	if p.Excerpt != nil {
		excerpt = *p.Excerpt
	}
	if excerpt == "" {
		excerpt = DeriveExcerpt(p.Content, 200)
	}

	return postSummaryJSON{
		ID:            p.ID,
		Slug:          p.Slug,
		Title:         p.Title,
		Excerpt:       excerpt,
		FeaturedImage: p.FeaturedImage,
		ReadTime:      p.ReadTime,
		PublishedAt:   p.PublishedAt.Format("2006-01-02"),
	}
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	embedSrcRe   = regexp.MustCompile(`src="([^"]+)"`)
)

// DeriveExcerpt strips markup, collapses whitespace and truncates at the last
// word boundary under limit.
func DeriveExcerpt(content string, limit int) string {
	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(htmlTagRe.ReplaceAllString(content, " "), " "))
	if len(text) <= limit {
		return text
	}

	// Back up to a rune boundary first so the byte cap never splits a
	// multi-byte character, then prefer the last word boundary.
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	cut := text[:limit]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

// embeddedVideoID finds the first iframe/embed source in the content that
// yields a platform video ID.
func embeddedVideoID(content string) string {
	for _, m := range embedSrcRe.FindAllStringSubmatch(content, -1) {
		if id := races.YouTubeID(m[1]); id != "" {
			return id
		}
	}
	return ""
}
