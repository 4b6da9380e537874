package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/geosite/cms/internal/config"
	"github.com/geosite/cms/internal/middleware"
)

// SetupRoutes wires middleware and all resource routes onto app.
func SetupRoutes(app *fiber.App, h *Handlers, cfg *config.Config) {
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join([]string{
			cfg.FrontendURL,
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": "Too many requests. Please try again later.",
			})
		},
	}))

	// Uploaded images are served straight from the upload directory.
	app.Static("/uploads", cfg.UploadDir)

	app.Get("/health", h.HealthCheck)

	admin := middleware.RequireAdmin(h.Auth())
	api := app.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Login)
	authGroup.Post("/register", h.Register)
	authGroup.Get("/me", middleware.RequireAuth(h.Auth()), h.Me)

	// Articles. The tags route must be registered before the catch-all
	// id-or-slug parameter.
	articles := api.Group("/articles")
	articles.Get("", h.ListArticles)
	articles.Get("/tags/all", h.GetAllTags)
	articles.Get("/:idOrSlug", h.GetArticle)
	articles.Post("", admin, h.CreateArticle)
	articles.Put("/:id", admin, h.UpdateArticle)
	articles.Delete("/:id", admin, h.DeleteArticle)

	// Users
	users := api.Group("/users", admin)
	users.Get("", h.ListUsers)
	users.Post("", h.CreateUser)
	users.Put("/:id", h.UpdateUser)
	users.Delete("/:id", h.DeleteUser)

	// Upload
	uploadGroup := api.Group("/upload", admin)
	uploadGroup.Post("/image", h.UploadImage)
	uploadGroup.Delete("", h.DeleteUpload)

	// Videos
	videos := api.Group("/videos")
	videos.Get("", h.ListVideos)
	videos.Get("/:id", h.GetVideo)
	videos.Post("", admin, h.CreateVideo)
	videos.Put("/:id", admin, h.UpdateVideo)
	videos.Delete("/:id", admin, h.DeleteVideo)
	videos.Post("/:id/toggle", admin, h.ToggleVideo)

	// Contact
	contact := api.Group("/contact")
	contact.Post("", h.SubmitContact)
	contact.Get("", admin, h.ListContactSubmissions)
	contact.Get("/:id", admin, h.GetContactSubmission)
	contact.Put("/:id/status", admin, h.UpdateContactStatus)
	contact.Delete("/:id", admin, h.DeleteContactSubmission)

	// Company info and statistics
	api.Get("/company", h.GetCompanyInfo)
	api.Put("/company", admin, h.UpdateCompanyInfo)
	api.Get("/statistics", h.GetStatistics)
	api.Put("/statistics", admin, h.UpdateStatistics)

	// Shared-shape resources
	h.RegisterResourceRoutes(api, admin)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "Endpoint not found",
		})
	})
}
