// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, and rate limiting, then mounts two surfaces on one
// engine: the JSON ads API and the server-rendered pages.
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

	"github.com/services-ads/go-ads-backend/docs"
	"github.com/services-ads/go-ads-backend/internal/config"
	"github.com/services-ads/go-ads-backend/internal/domain"
	"github.com/services-ads/go-ads-backend/internal/http/handlers"
	"github.com/services-ads/go-ads-backend/internal/http/middleware"
	"github.com/services-ads/go-ads-backend/internal/identity"
	"github.com/services-ads/go-ads-backend/internal/repo"
	"github.com/services-ads/go-ads-backend/internal/services"
	"github.com/services-ads/go-ads-backend/internal/web"
)

// adRepoShim adapts the repository free functions to the services.AdRepo
// interface expected by the AdService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type adRepoShim struct{}

// CreateAd proxies repo.CreateAd.
func (adRepoShim) CreateAd(ctx context.Context, db *gorm.DB, fields repo.AdFields) (*domain.Ad, error) {
	return repo.CreateAd(ctx, db, fields)
}

// ListAds proxies repo.ListAds.
func (adRepoShim) ListAds(ctx context.Context, db *gorm.DB) ([]domain.Ad, error) {
	return repo.ListAds(ctx, db)
}

// GetAd proxies repo.GetAd.
func (adRepoShim) GetAd(ctx context.Context, db *gorm.DB, id string) (*domain.Ad, error) {
	return repo.GetAd(ctx, db, id)
}

// UpdateAd proxies repo.UpdateAd.
func (adRepoShim) UpdateAd(ctx context.Context, db *gorm.DB, id string, patch repo.AdPatch) (*domain.Ad, error) {
	return repo.UpdateAd(ctx, db, id, patch)
}

// DeleteAd proxies repo.DeleteAd.
func (adRepoShim) DeleteAd(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteAd(ctx, db, id)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, then mounts the
// JSON API under the configured base path and the rendered pages at the root.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with identity-token scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (covers inline image payloads)
//  6. Metrics
//  7. Rate limiter (per author token/IP)
//  8. CORS and security headers
//  9. Response compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (author-id is masked by default)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	r.Use(limitBody(cfg.MaxBodyBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per author token/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByAuthorOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", handlers.HeaderAuthorID},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
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
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", handlers.HeaderAuthorID},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
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

	// 9) Compress responses; pages and the ad list with inline images shrink well
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (off by default)
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: service ← repo/db
	adSvc := services.NewAdService(db, adRepoShim{})
	h := handlers.New(adSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/ads", h.ListAds)
		api.POST("/ads", h.CreateAd)
		api.GET("/ads/:id", h.GetAd)
		api.PUT("/ads/:id", h.UpdateAd)
		api.DELETE("/ads/:id", h.DeleteAd)
	}

	// Server-rendered pages at the root
	pages := web.NewPages(adSvc, identity.NewCookieProvider())
	pages.Default = web.LocaleFor(cfg.DefaultLocale)
	web.RegisterPages(r, pages)
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
