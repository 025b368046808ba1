// cmd/migratewp/main.go
// Migrates published blog posts from a WordPress MySQL database into the
// local PostgreSQL database.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/wordpress?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migratewp -prefix wp_
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/filmmyrun/fmrapi/config"
	bundb "github.com/filmmyrun/fmrapi/db"
	"github.com/filmmyrun/fmrapi/models"
)

const batchSize = 200

func main() {
	prefix := flag.String("prefix", "wp_", "WordPress table prefix")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()

	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/wordpress?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	thumbs, err := loadThumbnails(ctx, myDB, *prefix)
	if err != nil {
		log.Fatalf("load thumbnails: %v", err)
	}
	log.Printf("found %d featured-image mappings", len(thumbs))

	n, err := migratePosts(ctx, myDB, pgDB, *prefix, thumbs)
	if err != nil {
		log.Fatalf("migrate posts: %v", err)
	}
	log.Printf("%d posts migrated", n)
}

// loadThumbnails resolves each post's _thumbnail_id meta to the attachment's
// public URL (the attachment row's guid).
func loadThumbnails(ctx context.Context, myDB *sql.DB, prefix string) (map[int64]string, error) {
	q := fmt.Sprintf(`
		SELECT pm.post_id, att.guid
		FROM %[1]spostmeta pm
		INNER JOIN %[1]sposts att ON att.ID = CAST(pm.meta_value AS UNSIGNED)
		WHERE pm.meta_key = '_thumbnail_id' AND att.post_type = 'attachment'`, prefix)

	rows, err := myDB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var postID int64
		var guid string
		if err := rows.Scan(&postID, &guid); err != nil {
			return nil, err
		}
		if strings.Contains(guid, "wp-content/uploads") {
			out[postID] = guid
		}
	}
	return out, rows.Err()
}

func migratePosts(ctx context.Context, myDB *sql.DB, pgDB *bun.DB, prefix string, thumbs map[int64]string) (int, error) {
	q := fmt.Sprintf(`
		SELECT ID, post_date, post_content, post_title, post_excerpt, post_name
		FROM %sposts
		WHERE post_status = 'publish' AND post_type = 'post'
		ORDER BY ID`, prefix)

	rows, err := myDB.QueryContext(ctx, q)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	total := 0
	batch := make([]*models.Post, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		_, err := pgDB.NewInsert().Model(&batch).
			On("CONFLICT (slug) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for rows.Next() {
		var (
			id      int64
			date    time.Time
			content string
			title   string
			excerpt sql.NullString
			name    string
		)
		if err := rows.Scan(&id, &date, &content, &title, &excerpt, &name); err != nil {
			return total, err
		}
		if strings.TrimSpace(title) == "" || strings.TrimSpace(name) == "" {
			continue
		}

		post := &models.Post{
			Slug:        name,
			Title:       title,
			Content:     content,
			ReadTime:    readTime(content),
			PublishedAt: date,
		}
		if excerpt.Valid && strings.TrimSpace(excerpt.String) != "" {
			e := excerpt.String
			post.Excerpt = &e
		}
		if url, ok := thumbs[id]; ok {
			post.FeaturedImage = &url
		}

		batch = append(batch, post)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	if err := flush(); err != nil {
		return total, err
	}

	return total, nil
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// readTime estimates reading minutes at 200 words per minute, minimum 1.
func readTime(content string) int {
	words := len(strings.Fields(htmlTagRe.ReplaceAllString(content, " ")))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
