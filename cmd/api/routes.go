package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/georgemunganga/praktikum-backend/internal/apperr"
	"github.com/georgemunganga/praktikum-backend/internal/config"
	"github.com/georgemunganga/praktikum-backend/internal/logger"
	"github.com/georgemunganga/praktikum-backend/internal/metrics"
	"github.com/georgemunganga/praktikum-backend/internal/modules/auth"
	"github.com/georgemunganga/praktikum-backend/internal/modules/product"
	"github.com/georgemunganga/praktikum-backend/internal/modules/user"
	"github.com/georgemunganga/praktikum-backend/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const msgTooManyLogins = "Too many login attempts, try again later"

// pinger is satisfied by *sql.DB.
type pinger interface {
	PingContext(ctx context.Context) error
}

func newRouter(cfg config.Config, db *sql.DB, rdb *redis.Client, log zerolog.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(ratelimit.CapturePeer)
	router.Use(middleware.RealIP)
	router.Use(logger.Middleware(log))
	router.Use(metrics.Middleware)
	router.Use(middleware.Recoverer)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello, World!"))
	})
	router.Get("/healthz", healthHandler(db))
	router.Handle("/metrics", metrics.Handler())

	// ── Users ───────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService, cfg.RedactInternalErrors).RegisterRoutes(router)

	// ── Auth ────────────────────────────────────────────────
	signer := auth.NewJWTSigner()
	authService := auth.NewService(userRepo, auth.BcryptVerifier{}, signer, auth.Config{
		Secret:    cfg.JWTSecret,
		ExpiresIn: cfg.JWTExpire,
	})
	limiter := ratelimit.NewFixedWindowLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)
	auth.NewHandler(authService, signer, cfg.JWTSecret, cfg.RedactInternalErrors).
		RegisterRoutes(router, ratelimit.Middleware(limiter, "login", msgTooManyLogins, ratelimit.ClientIP))

	// ── Products ────────────────────────────────────────────
	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	product.NewHandler(productService, cfg.RedactInternalErrors).RegisterRoutes(router)

	return router
}

func healthHandler(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
			apperr.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		apperr.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
