package api

import (
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/auth"
	"github.com/geosite/cms/internal/cache"
	"github.com/geosite/cms/internal/config"
	"github.com/geosite/cms/internal/mailer"
	"github.com/geosite/cms/internal/middleware"
	"github.com/geosite/cms/internal/models"
	"github.com/geosite/cms/internal/store"
	"github.com/geosite/cms/internal/upload"
)

const version = "1.0.0"

// Handlers bundles every resource handler's dependencies.
type Handlers struct {
	config   *config.Config
	cache    cache.Cache
	auth     *auth.Service
	validate *middleware.Validator
	uploads  *upload.Handler
	mailer   *mailer.Mailer

	articles     *store.ArticleStore
	users        *store.UserStore
	services     *store.CRUDStore[models.Service]
	team         *store.CRUDStore[models.TeamMember]
	certificates *store.CRUDStore[models.Certificate]
	licenses     *store.CRUDStore[models.License]
	projects     *store.CRUDStore[models.Project]
	videos       *store.VideoStore
	contact      *store.ContactStore
	company      *store.SingletonStore[models.CompanyInfo]
	statistics   *store.SingletonStore[models.Statistics]
}

// NewHandlers wires the stores and supporting services for all routes.
func NewHandlers(cfg *config.Config, db *gorm.DB, cacheClient cache.Cache, uploads *upload.Handler) *Handlers {
	return &Handlers{
		config:   cfg,
		cache:    cacheClient,
		auth:     auth.NewService(cfg.JWTSecret, cfg.AccessTokenTTL),
		validate: middleware.NewValidator(),
		uploads:  uploads,
		mailer:   mailer.New(cfg),

		articles:     store.NewArticleStore(db),
		users:        store.NewUserStore(db),
		services:     store.NewCRUDStore[models.Service](db, "Service not found", "created_at DESC"),
		team:         store.NewCRUDStore[models.TeamMember](db, "Team member not found", "created_at"),
		certificates: store.NewCRUDStore[models.Certificate](db, "Certificate not found", "created_at DESC"),
		licenses:     store.NewCRUDStore[models.License](db, "License not found", "created_at DESC"),
		projects:     store.NewCRUDStore[models.Project](db, "Project not found", "sort_order, created_at DESC"),
		videos:       store.NewVideoStore(db),
		contact:      store.NewContactStore(db),
		company:      store.NewSingletonStore[models.CompanyInfo](db, "Company info not found"),
		statistics:   store.NewSingletonStore[models.Statistics](db, "Statistics not found"),
	}
}

// Auth exposes the token service for route guards.
func (h *Handlers) Auth() *auth.Service {
	return h.auth
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"environment": h.config.Env,
		"version":     version,
	})
}

// requestBase derives scheme://host for building upload URLs, honoring
// forwarded-host headers set by a fronting proxy.
func requestBase(c *fiber.Ctx) string {
	proto := c.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = c.Protocol()
	}
	host := c.Get("X-Forwarded-Host")
	if host == "" {
		host = c.Hostname()
	}
	if host == "" {
		return ""
	}
	return proto + "://" + host
}

// parseID parses a numeric route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}
