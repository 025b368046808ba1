// cmd/migrateimages/main.go
// Moves images referenced in blog posts to R2 and rewrites the database
// references to the public R2 host. Files are read from a local copy of the
// WordPress uploads directory; objects already in the bucket are skipped.
//
// Usage:
//
//	R2_ACCOUNT_ID=... R2_ACCESS_KEY_ID=... R2_SECRET_ACCESS_KEY=... \
//	go run ./cmd/migrateimages -uploads ../html/wp-content/uploads [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/filmmyrun/fmrapi/config"
	bundb "github.com/filmmyrun/fmrapi/db"
	"github.com/filmmyrun/fmrapi/models"
	"github.com/filmmyrun/fmrapi/storage"
)

// Matches both direct and CDN-proxied upload URLs inside post content.
var uploadURLRe = regexp.MustCompile(`https?://[^"'\s)]*?/wp-content/uploads/([^"'\s)]+)`)

func main() {
	uploadsDir := flag.String("uploads", "", "local WordPress uploads directory (required)")
	dryRun := flag.Bool("dry-run", false, "report what would change without uploading or writing")
	flag.Parse()

	if *uploadsDir == "" {
		log.Fatal("-uploads is required")
	}

	ctx := context.Background()
	cfg := config.Load()

	r2, err := storage.New(ctx, &cfg.R2)
	if err != nil {
		log.Fatalf("r2: %v", err)
	}

	db := bundb.Setup(cfg)
	defer db.Close()

	var posts []models.Post
	if err := db.NewSelect().Model(&posts).OrderExpr("id").Scan(ctx); err != nil {
		log.Fatalf("load posts: %v", err)
	}
	log.Printf("scanning %d posts", len(posts))

	uploaded, rewritten, missing := 0, 0, 0
	seen := map[string]string{} // upload path -> public URL

	for i := range posts {
		post := &posts[i]
		changed := false

		fields := []*string{&post.Content}
		if post.FeaturedImage != nil {
			fields = append(fields, post.FeaturedImage)
		}

		for _, field := range fields {
			next := uploadURLRe.ReplaceAllStringFunc(*field, func(url string) string {
				rel := uploadURLRe.FindStringSubmatch(url)[1]

				public, ok := seen[rel]
				if !ok {
					var err error
					public, err = ensureUploaded(ctx, r2, *uploadsDir, rel, *dryRun)
					if err != nil {
						log.Printf("skip %s: %v", rel, err)
						missing++
						return url
					}
					seen[rel] = public
					uploaded++
				}
				return public
			})
			if next != *field {
				*field = next
				changed = true
			}
		}

		if changed {
			rewritten++
			if *dryRun {
				continue
			}
			_, err := db.NewUpdate().Model(post).
				Column("content", "featured_image").
				WherePK().
				Exec(ctx)
			if err != nil {
				log.Fatalf("update post %d: %v", post.ID, err)
			}
		}
	}

	log.Printf("done: %d files uploaded, %d posts rewritten, %d files missing (dry-run=%v)",
		uploaded, rewritten, missing, *dryRun)
}

// ensureUploaded puts one uploads-relative file into the bucket unless it is
// already there, and returns its public URL.
func ensureUploaded(ctx context.Context, r2 *storage.R2, uploadsDir, rel string, dryRun bool) (string, error) {
	key := "wp-uploads/" + rel

	exists, err := r2.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists || dryRun {
		return r2.PublicURL(key), nil
	}

	local := filepath.Join(uploadsDir, filepath.FromSlash(rel))
	body, err := os.ReadFile(local)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", local, err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(local)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return r2.Upload(ctx, key, body, contentType)
}
