package seed

import (
	"context"
	"time"

	"github.com/geosite/cms/internal/auth"
	"github.com/geosite/cms/internal/config"
	"github.com/geosite/cms/internal/logger"
	"github.com/geosite/cms/internal/models"
	"github.com/geosite/cms/internal/store"
)

// EnsureAdmin creates the initial administrator account when no admin
// exists yet. The first user created through this path always gets the
// admin flag. Returns the admin account, existing or new.
func EnsureAdmin(ctx context.Context, users *store.UserStore, cfg *config.Config) (*models.User, error) {
	count, err := users.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		admin, err := users.GetByUsername(ctx, cfg.AdminUsername)
		if err == nil {
			return admin, nil
		}
		// An admin exists under a different username; nothing to do.
		return nil, nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Username:       cfg.AdminUsername,
		Email:          cfg.AdminEmail,
		HashedPassword: hash,
		IsAdmin:        true,
		IsActive:       true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, err
	}

	logger.Get().Info().
		Str("username", admin.Username).
		Msg("Initial admin user created")
	return admin, nil
}

// SeedDemoArticles inserts a handful of published demo articles when the
// articles table is empty. Used for development environments.
func SeedDemoArticles(ctx context.Context, articles *store.ArticleStore) (int, error) {
	existing, err := articles.List(ctx, 0, 1, "", "")
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	demo := []models.Article{
		{
			TitleEN:     "Introduction to BIM Technology",
			Slug:        "introduction-to-bim",
			SummaryEN:   "Learn the basics of Building Information Modeling and its impact on modern construction.",
			ContentEN:   "<p>BIM (Building Information Modeling) is a comprehensive approach to building design, construction, and management.</p>",
			Category:    "BIM",
			Author:      "Editorial Team",
			Tags:        "BIM, technology, construction",
			IsPublished: true,
			PublishDate: now.Add(-7 * 24 * time.Hour),
		},
		{
			TitleEN:     "Surveying: The Foundation of Construction",
			Slug:        "surveying-foundation-construction",
			SummaryEN:   "Explore the essential role of surveying in modern construction projects.",
			ContentEN:   "<p>Surveying is the process of determining positions and distances in the landscape.</p>",
			Category:    "Surveying",
			Author:      "Editorial Team",
			Tags:        "surveying, GPS, mapping",
			IsPublished: true,
			PublishDate: now.Add(-5 * 24 * time.Hour),
		},
		{
			TitleEN:     "Drone Technology in Land Surveying",
			Slug:        "drone-surveying-technology",
			SummaryEN:   "Discover how drones are transforming surveying and mapping practices.",
			ContentEN:   "<p>Unmanned aerial vehicles have become indispensable tools in surveying.</p>",
			Category:    "Surveying",
			Author:      "Editorial Team",
			Tags:        "drone, surveying, UAV",
			IsPublished: true,
			PublishDate: now,
		},
	}

	created := 0
	for i := range demo {
		if err := articles.Create(ctx, &demo[i]); err != nil {
			return created, err
		}
		created++
	}

	logger.Get().Info().Int("count", created).Msg("Demo articles seeded")
	return created, nil
}
