package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Article is a news item ingested from an external RSS feed.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	Guid        string    `bun:"guid,notnull,unique" json:"guid"`
	Title       string    `bun:"title,notnull" json:"title"`
	Link        string    `bun:"link,notnull" json:"link"`
	Description *string   `bun:"description" json:"description,omitempty"`
	Source      string    `bun:"source,notnull" json:"source"`
	Category    string    `bun:"category,notnull" json:"category"`
	PubDate     time.Time `bun:"pub_date,notnull" json:"pubDate"`
}
