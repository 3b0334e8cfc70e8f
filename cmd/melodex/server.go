package main

import (
	"database/sql"
	"net/http"

	"github.com/rs/zerolog/log"

	"melodex/internal/app/favorites"
	"melodex/internal/app/library"
	"melodex/internal/app/radar"
	"melodex/internal/app/users"
	"melodex/internal/auth"
	"melodex/internal/cache"
	"melodex/internal/http/middleware"
	"melodex/internal/httpapi"
	"melodex/internal/store"
)

// buildHandler wires the store, services and middleware into the
// final HTTP handler.
func buildHandler(cfg config, db *sql.DB) http.Handler {
	st := store.New(db)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	var radarCache radar.Cache
	if cfg.RedisURL != "" {
		songs, err := cache.NewSongs(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Warn().Err(err).Msg("radar cache disabled")
		} else {
			radarCache = songs
		}
	}

	server := httpapi.NewServer(
		users.New(st, tokens),
		library.New(st),
		favorites.New(st),
		radar.New(st, radarCache),
		tokens,
	)

	handler := server.Routes()
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.RequestLogging(handler)
	handler = middleware.Recovery(handler)
	return handler
}
