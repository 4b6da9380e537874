package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/database"
	"github.com/geosite/cms/internal/models"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// testDB opens a fresh in-memory SQLite database per test.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	url := fmt.Sprintf("sqlite://file:storetest%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Open(url, false)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func testArticle(slug string) *models.Article {
	return &models.Article{
		TitleEN:     "Title for " + slug,
		Slug:        slug,
		SummaryEN:   "Summary",
		ContentEN:   "<p>Content</p>",
		Category:    "BIM",
		Author:      "Team",
		Tags:        "bim, technology",
		IsPublished: true,
	}
}

func TestArticleCreateAndGet(t *testing.T) {
	s := NewArticleStore(testDB(t))
	ctx := context.Background()

	art := testArticle("intro-bim")
	if err := s.Create(ctx, art); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if art.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if art.PublishDate.IsZero() {
		t.Error("expected publish date to be assigned")
	}

	byID, err := s.GetByIDOrSlug(ctx, fmt.Sprint(art.ID))
	if err != nil {
		t.Fatalf("lookup by id failed: %v", err)
	}
	if byID.Slug != "intro-bim" {
		t.Errorf("unexpected slug: %s", byID.Slug)
	}

	bySlug, err := s.GetByIDOrSlug(ctx, "intro-bim")
	if err != nil {
		t.Fatalf("lookup by slug failed: %v", err)
	}
	if bySlug.ID != art.ID {
		t.Errorf("expected id %d, got %d", art.ID, bySlug.ID)
	}
}

func TestArticleGetMissing(t *testing.T) {
	s := NewArticleStore(testDB(t))
	ctx := context.Background()

	_, err := s.GetByIDOrSlug(ctx, "999999")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestArticleNumericSlugShadowedByID(t *testing.T) {
	s := NewArticleStore(testDB(t))
	ctx := context.Background()

	first := testArticle("first")
	if err := s.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A slug consisting of the first article's id digits: id lookup wins.
	numeric := testArticle(fmt.Sprint(first.ID))
	if err := s.Create(ctx, numeric); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.GetByIDOrSlug(ctx, fmt.Sprint(first.ID))
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("id lookup must win over the all-digits slug; got article %d", got.ID)
	}

	// A numeric token matching no id still falls back to slug lookup.
	orphan := testArticle("424242")
	if err := s.Create(ctx, orphan); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err = s.GetByIDOrSlug(ctx, "424242")
	if err != nil {
		t.Fatalf("slug fallback failed: %v", err)
	}
	if got.ID != orphan.ID {
		t.Errorf("expected slug fallback to find article %d, got %d", orphan.ID, got.ID)
	}
}

func TestArticleSlugConflicts(t *testing.T) {
	s := NewArticleStore(testDB(t))
	ctx := context.Background()

	a := testArticle("intro-bim")
	if err := s.Create(ctx, a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Creating another article with the same slug fails.
	if err := s.Create(ctx, testArticle("intro-bim")); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected Conflict on duplicate slug, got %v", err)
	}

	b := testArticle("other-slug")
	if err := s.Create(ctx, b); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Updating B to A's slug fails.
	slug := "intro-bim"
	if _, err := s.Update(ctx, b.ID, ArticleUpdate{Slug: &slug}); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected Conflict on update to taken slug, got %v", err)
	}

	// Updating A to its own current slug succeeds.
	if _, err := s.Update(ctx, a.ID, ArticleUpdate{Slug: &slug}); err != nil {
		t.Errorf("self-slug update must succeed, got %v", err)
	}
}

func TestArticlePartialUpdate(t *testing.T) {
	s := NewArticleStore(testDB(t))
	ctx := context.Background()

	a := testArticle("intro-bim")
	if err := s.Create(ctx, a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "Updated Title"
	updated, err := s.Update(ctx, a.ID, ArticleUpdate{TitleEN: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.TitleEN != "Updated Title" {
		t.Errorf("title not updated: %s", updated.TitleEN)
	}
	if updated.Slug != "intro-bim" {
		t.Errorf("untouched field changed: %s", updated.Slug)
	}

	// Unpublishing via pointer-to-false must be applied.
	published := false
	updated, err = s.Update(ctx, a.ID, ArticleUpdate{IsPublished: &published})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.IsPublished {
		t.Error("expected article to be unpublished")
	}
}

func TestArticleListPublishedOnly(t *testing.T) {
	s := NewArticleStore(testDB(t))
	ctx := context.Background()

	pub := testArticle("published")
	pub.PublishDate = time.Now().Add(-time.Hour)
	unpub := testArticle("unpublished")
	unpub.IsPublished = false

	for _, a := range []*models.Article{pub, unpub} {
		if err := s.Create(ctx, a); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	for _, tc := range []struct{ tag, category string }{
		{"", ""},
		{"bim", ""},
		{"", "BIM"},
		{"bim", "BIM"},
	} {
		articles, err := s.List(ctx, 0, 100, tc.tag, tc.category)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		for _, a := range articles {
			if !a.IsPublished {
				t.Errorf("unpublished article leaked into listing (tag=%q category=%q)", tc.tag, tc.category)
			}
		}
	}
}

func TestArticleListOrderingAndFilters(t *testing.T) {
	s := NewArticleStore(testDB(t))
	ctx := context.Background()

	old := testArticle("old-article")
	old.PublishDate = time.Now().Add(-48 * time.Hour)
	old.Category = "Surveying"
	old.Tags = "surveying, gps"

	recent := testArticle("recent-article")
	recent.PublishDate = time.Now()

	for _, a := range []*models.Article{old, recent} {
		if err := s.Create(ctx, a); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	articles, err := s.List(ctx, 0, 100, "", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Slug != "recent-article" {
		t.Errorf("expected newest first, got %s", articles[0].Slug)
	}

	articles, err = s.List(ctx, 0, 100, "gps", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Slug != "old-article" {
		t.Errorf("tag filter failed: %+v", articles)
	}

	articles, err = s.List(ctx, 0, 100, "", "Surveying")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Slug != "old-article" {
		t.Errorf("category filter failed: %+v", articles)
	}

	articles, err = s.List(ctx, 1, 1, "", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Slug != "old-article" {
		t.Errorf("pagination failed: %+v", articles)
	}
}

func TestArticleDistinctTags(t *testing.T) {
	s := NewArticleStore(testDB(t))
	ctx := context.Background()

	a := testArticle("a")
	a.Tags = "bim, technology"
	b := testArticle("b")
	b.Tags = "technology , gps"
	hidden := testArticle("hidden")
	hidden.Tags = "secret"
	hidden.IsPublished = false

	for _, art := range []*models.Article{a, b, hidden} {
		if err := s.Create(ctx, art); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tags, err := s.DistinctTags(ctx)
	if err != nil {
		t.Fatalf("DistinctTags failed: %v", err)
	}

	want := []string{"bim", "gps", "technology"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("expected %v, got %v", want, tags)
			break
		}
	}
}

func TestArticleDeleteMissing(t *testing.T) {
	s := NewArticleStore(testDB(t))

	if err := s.Delete(context.Background(), 999999); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestUserUniqueness(t *testing.T) {
	s := NewUserStore(testDB(t))
	ctx := context.Background()

	admin := &models.User{Username: "admin", Email: "admin@example.com", HashedPassword: "x", IsAdmin: true, IsActive: true}
	if err := s.Create(ctx, admin); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := &models.User{Username: "admin", Email: "other@example.com", HashedPassword: "x"}
	if err := s.Create(ctx, dup); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected Conflict on duplicate username, got %v", err)
	}

	dup = &models.User{Username: "other", Email: "admin@example.com", HashedPassword: "x"}
	if err := s.Create(ctx, dup); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected Conflict on duplicate email, got %v", err)
	}

	second := &models.User{Username: "editor", Email: "editor@example.com", HashedPassword: "x", IsActive: true}
	if err := s.Create(ctx, second); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Updating to a taken username fails, updating to own values succeeds.
	taken := "admin"
	if _, err := s.Update(ctx, second.ID, UserUpdate{Username: &taken}); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected Conflict, got %v", err)
	}
	own := "editor"
	if _, err := s.Update(ctx, second.ID, UserUpdate{Username: &own}); err != nil {
		t.Errorf("self-username update must succeed, got %v", err)
	}

	count, err := s.CountAdmins(ctx)
	if err != nil {
		t.Fatalf("CountAdmins failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 admin, got %d", count)
	}
}

func TestVideoViewsAndToggle(t *testing.T) {
	s := NewVideoStore(testDB(t))
	ctx := context.Background()

	video := &models.Video{Title: "Site tour", URL: "https://example.com/v.mp4", Active: true}
	if err := s.Create(ctx, video); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.GetAndCountView(ctx, video.ID)
	if err != nil {
		t.Fatalf("GetAndCountView failed: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("expected 1 view, got %d", got.Views)
	}

	toggled, err := s.Toggle(ctx, video.ID)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if toggled.Active {
		t.Error("expected video to be inactive after toggle")
	}

	videos, err := s.ListVideos(ctx, true, 10)
	if err != nil {
		t.Fatalf("ListVideos failed: %v", err)
	}
	if len(videos) != 0 {
		t.Errorf("inactive video leaked into active-only listing")
	}
}

func TestSingletonUpsert(t *testing.T) {
	s := NewSingletonStore[models.Statistics](testDB(t), "Statistics not found")
	ctx := context.Background()

	if _, err := s.Get(ctx); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound before first upsert, got %v", err)
	}

	seed := &models.Statistics{AnnualProjects: 10, ServiceTypes: 4, Employees: 25, SatisfiedClients: 100}
	created, err := s.Upsert(ctx, seed, nil)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if created.AnnualProjects != 10 {
		t.Errorf("unexpected seed row: %+v", created)
	}

	updated, err := s.Upsert(ctx, seed, map[string]interface{}{"annual_projects": 12})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if updated.AnnualProjects != 12 {
		t.Errorf("expected updated row, got %+v", updated)
	}
	if updated.ID != created.ID {
		t.Errorf("upsert must not create a second row")
	}
}
