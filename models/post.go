package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Post is a blog entry, migrated from WordPress or created directly.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	Slug          string    `bun:"slug,notnull,unique" json:"slug"`
	Title         string    `bun:"title,notnull" json:"title"`
	Content       string    `bun:"content,notnull" json:"content"`
	Excerpt       *string   `bun:"excerpt" json:"excerpt,omitempty"`
	FeaturedImage *string   `bun:"featured_image" json:"featuredImage,omitempty"`
	ReadTime      int       `bun:"read_time,notnull,default:1" json:"readTime"`
	PublishedAt   time.Time `bun:"published_at,notnull" json:"publishedAt"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
