package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/filmmyrun/fmrapi/config"
	"github.com/filmmyrun/fmrapi/db"
	"github.com/filmmyrun/fmrapi/handlers"
	applog "github.com/filmmyrun/fmrapi/logger"
	mw "github.com/filmmyrun/fmrapi/middleware"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	h := handlers.New(bdb, cfg.JWTKey())

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization", mw.APIKeyHeader},
		AllowCredentials: true,
	}))

	// Public reads
	e.GET("/api/races", h.Races)
	e.GET("/api/films", h.Films)
	e.GET("/api/featured-video", h.FeaturedVideo)
	e.GET("/api/news", h.News)
	e.GET("/api/age-grading", h.AgeGrading)
	e.GET("/api/posts", h.ListPosts)
	e.GET("/api/posts/:slug", h.GetPost)

	// Bulk sync, behind the pre-shared key
	sync := e.Group("/api/races/sync", mw.APIKey(cfg.SyncAPIKey))
	sync.POST("", h.SyncRaces)
	sync.DELETE("", h.ClearRaces)

	// News ingestion, behind the cron secret. GET kept alongside POST for cron services
	// that can only issue GETs
	news := e.Group("/api/news/sync", handlers.NewsSyncAuth(cfg.CronSecret))
	news.GET("", h.SyncNews)
	news.POST("", h.SyncNews)

	// Admin, behind JWT
	e.POST("/api/signin", h.Signin)
	admin := e.Group("/api/admin", mw.JWT(cfg.JWTKey()))
	admin.POST("/password-hash", h.PasswordHash)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
