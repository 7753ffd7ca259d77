// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/dkontos/go-reservation-backend/internal/auth"
	"github.com/dkontos/go-reservation-backend/internal/config"
	"github.com/dkontos/go-reservation-backend/internal/domain"
	"github.com/dkontos/go-reservation-backend/internal/http/handlers"
	"github.com/dkontos/go-reservation-backend/internal/http/middleware"
	"github.com/dkontos/go-reservation-backend/internal/repo"
	"github.com/dkontos/go-reservation-backend/internal/services"
)

// reservationRepoShim adapts the repository free functions to the
// services.ReservationRepo interface expected by the ReservationService.
// This keeps services decoupled from the concrete repo package while reusing
// existing functions.
type reservationRepoShim struct{}

// Create proxies repo.CreateReservation.
func (reservationRepoShim) Create(ctx context.Context, db *gorm.DB, r *domain.Reservation) error {
	return repo.CreateReservation(ctx, db, r)
}

// List proxies repo.ListReservations.
func (reservationRepoShim) List(ctx context.Context, db *gorm.DB) ([]domain.Reservation, error) {
	return repo.ListReservations(ctx, db)
}

// Count proxies repo.CountReservations (pagination support).
func (reservationRepoShim) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountReservations(ctx, db)
}

// ListPage proxies repo.ListReservationsPage (pagination support).
func (reservationRepoShim) ListPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Reservation, error) {
	return repo.ListReservationsPage(ctx, db, offset, limit)
}

// GetByCustomer proxies repo.GetReservationByCustomer.
func (reservationRepoShim) GetByCustomer(ctx context.Context, db *gorm.DB, name string) (*domain.Reservation, error) {
	return repo.GetReservationByCustomer(ctx, db, name)
}

// UpdateByCustomer proxies repo.UpdateReservationByCustomer.
func (reservationRepoShim) UpdateByCustomer(ctx context.Context, db *gorm.DB, name string, updated domain.Reservation) error {
	return repo.UpdateReservationByCustomer(ctx, db, name, updated)
}

// DeleteByCustomer proxies repo.DeleteReservationByCustomer.
func (reservationRepoShim) DeleteByCustomer(ctx context.Context, db *gorm.DB, name string) error {
	return repo.DeleteReservationByCustomer(ctx, db, name)
}

// userRepoShim adapts the repository free functions to the services.UserRepo
// interface expected by the AccountService.
type userRepoShim struct{}

// Create proxies repo.CreateUser.
func (userRepoShim) Create(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return repo.CreateUser(ctx, db, u)
}

// GetByEmail proxies repo.GetUserByEmail.
func (userRepoShim) GetByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return repo.GetUserByEmail(ctx, db, email)
}

// UpdateProfile proxies repo.UpdateUserProfile.
func (userRepoShim) UpdateProfile(ctx context.Context, db *gorm.DB, id string, u domain.User) error {
	return repo.UpdateUserProfile(ctx, db, id, u)
}

// UpdatePassword proxies repo.UpdateUserPassword.
func (userRepoShim) UpdatePassword(ctx context.Context, db *gorm.DB, id, hash string) error {
	return repo.UpdateUserPassword(ctx, db, id, hash)
}

// DeleteByEmail proxies repo.DeleteUserByEmail.
func (userRepoShim) DeleteByEmail(ctx context.Context, db *gorm.DB, email string) error {
	return repo.DeleteUserByEmail(ctx, db, email)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), compression and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per user/IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction; account payloads carry emails and
	// phone numbers, so the scrubber earns its keep here.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Response compression (skip the metrics scrape endpoint)
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (behind SWAGGER_ENABLED)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	resvSvc := services.NewReservationService(db, reservationRepoShim{})
	resvSvc.Tables = cfg.TableCount
	acctSvc := services.NewAccountService(db, userRepoShim{})
	h := handlers.New(resvSvc, acctSvc, auth.Issuer{Cfg: cfg.JWT})

	requireAuth := auth.RequireAuth(cfg.JWT)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Accounts (register, login, and forgot-password are public)
		api.POST("/users/register", h.Register)
		api.POST("/users/login", h.Login)
		api.PUT("/users/password/forgot", h.ForgotPassword)
		api.PUT("/users/profile", requireAuth, h.UpdateProfile)
		api.POST("/users/password", requireAuth, h.ChangePassword)
		api.DELETE("/users", requireAuth, h.DeleteAccount)

		// Reservations (bearer token required)
		resv := api.Group("/reservations", requireAuth)
		resv.GET("", h.ListReservations)
		resv.POST("", h.CreateReservation)
		resv.GET("/:customerName", h.GetReservation)
		resv.PUT("/:customerName", h.UpdateReservation)
		resv.DELETE("/:customerName", h.DeleteReservation)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
