package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	gocache "github.com/patrickmn/go-cache"
	"github.com/uptrace/bun"
)

// Handler holds shared dependencies used by all route handlers. The database
// handle is injected here rather than shared through package state; it is
// created at process start and closed on shutdown by main.
type Handler struct {
	db       *bun.DB
	JWTKey   []byte
	validate *validator.Validate
	cache    *gocache.Cache

	// now is swappable so the daily featured rotation is testable.
	now func() time.Time
}

// readCacheTTL bounds staleness of the shaped dashboard/film payloads.
const readCacheTTL = 60 * time.Second

// New creates a Handler with the given database connection and JWT signing key.
func New(db *bun.DB, jwtKey []byte) *Handler {
	return &Handler{
		db:       db,
		JWTKey:   jwtKey,
		validate: validator.New(),
		cache:    gocache.New(readCacheTTL, 5*time.Minute),
		now:      time.Now,
	}
}
