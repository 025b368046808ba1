// Package feeds ingests running-news RSS feeds into the articles table.
// Feeds are fetched with retrying HTTP and a modest rate limit; items are
// scraped with pattern matching rather than a full XML parser because the
// handful of source feeds are stable and occasionally ill-formed.
package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/filmmyrun/fmrapi/models"
)

// Feed is one RSS source.
type Feed struct {
	Name     string
	URL      string
	Category string
}

// Sources are the configured feeds, checked in order.
var Sources = []Feed{
	{Name: "iRunFar", URL: "https://www.irunfar.com/feed", Category: "trail"},
	{Name: "UltraRunning Magazine", URL: "https://www.ultrarunning.com/feed/", Category: "ultra"},
	{Name: "Trail Runner Magazine", URL: "https://www.trailrunnermag.com/feed/", Category: "trail"},
	{Name: "Canadian Running", URL: "https://runningmagazine.ca/feed/", Category: "running"},
	{Name: "Trail Running Magazine", URL: "https://www.trailrunningmag.co.uk/feed/", Category: "trail"},
}

// maxArticleAge drops items older than this at ingest time.
const maxArticleAge = 30 * 24 * time.Hour

const userAgent = "FilmMyRun/1.0 (News Aggregator)"

// Report summarizes one ingestion run.
type Report struct {
	Fetched int      `json:"fetched"`
	Stored  int      `json:"stored"`
	Errors  []string `json:"errors"`
}

// Fetcher pulls feeds and upserts articles.
type Fetcher struct {
	db      *bun.DB
	client  *retryablehttp.Client
	limiter *rate.Limiter
	sources []Feed
}

// NewFetcher builds a Fetcher over the given database handle.
func NewFetcher(db *bun.DB) *Fetcher {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = 30 * time.Second
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = nil

	return &Fetcher{
		db:      db,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(2), 1),
		sources: Sources,
	}
}

// FetchAndStore pulls every source and upserts its recent items. A failing
// source is recorded in the report and does not abort the other sources.
func (f *Fetcher) FetchAndStore(ctx context.Context) Report {
	report := Report{Errors: []string{}}
	cutoff := time.Now().Add(-maxArticleAge)

	for _, feed := range f.sources {
		items, err := f.fetch(ctx, feed)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", feed.Name, err))
			continue
		}
		report.Fetched += len(items)

		for _, item := range items {
			pubDate, err := parsePubDate(item.PubDate)
			if err != nil {
				continue
			}
			if pubDate.Before(cutoff) {
				continue
			}

			article := &models.Article{
				Guid:        item.Guid,
				Title:       item.Title,
				Link:        item.Link,
				Description: item.Description,
				Source:      feed.Name,
				Category:    feed.Category,
				PubDate:     pubDate,
			}
			_, err = f.db.NewInsert().Model(article).
				On("CONFLICT (guid) DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description, pub_date = EXCLUDED.pub_date").
				Exec(ctx)
			if err != nil {
				zap.L().Warn("article upsert failed", zap.String("guid", item.Guid), zap.Error(err))
				continue
			}
			report.Stored++
		}
	}

	return report
}

func (f *Fetcher) fetch(ctx context.Context, feed Feed) ([]Item, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	return ParseRSS(string(body)), nil
}

// pubDateLayouts covers the RFC1123 variants seen across the source feeds.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

func parsePubDate(s string) (time.Time, error) {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized pubDate %q", s)
}
