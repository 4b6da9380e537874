package store

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/models"
)

// ArticleStore owns all article queries.
type ArticleStore struct {
	db *gorm.DB
}

func NewArticleStore(db *gorm.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// ArticleUpdate carries a partial update; nil fields are left untouched.
type ArticleUpdate struct {
	TitleEN     *string
	TitleFA     *string
	Slug        *string
	SummaryEN   *string
	SummaryFA   *string
	ContentEN   *string
	ContentFA   *string
	ImageURL    *string
	Tags        *string
	Category    *string
	Author      *string
	IsPublished *bool
}

// List returns published articles ordered by publish date descending,
// optionally filtered by tag membership and exact category.
func (s *ArticleStore) List(ctx context.Context, skip, limit int, tag, category string) ([]models.Article, error) {
	query := s.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("publish_date DESC")

	if tag != "" {
		query = query.Where("tags LIKE ?", "%"+tag+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var articles []models.Article
	if err := query.Offset(skip).Limit(limit).Find(&articles).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return articles, nil
}

// GetByIDOrSlug resolves a lookup token. A numeric token is tried as an id
// first and falls back to a slug lookup, so an article whose slug is all
// digits is shadowed by any article holding that id.
func (s *ArticleStore) GetByIDOrSlug(ctx context.Context, token string) (*models.Article, error) {
	var article models.Article

	if id, err := strconv.ParseUint(token, 10, 32); err == nil {
		err := s.db.WithContext(ctx).First(&article, uint(id)).Error
		if err == nil {
			return &article, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(err)
		}
	}

	err := s.db.WithContext(ctx).Where("slug = ?", token).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Article not found")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &article, nil
}

func (s *ArticleStore) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Article not found")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &article, nil
}

// Create inserts a new article, rejecting a slug already used by any
// existing article.
func (s *ArticleStore) Create(ctx context.Context, article *models.Article) error {
	taken, err := s.slugTaken(ctx, article.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("Article with this slug already exists")
	}

	if article.PublishDate.IsZero() {
		article.PublishDate = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(article).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Update applies a partial update to the article with the given id. A slug
// change is checked for collision against every other article.
func (s *ArticleStore) Update(ctx context.Context, id uint, upd ArticleUpdate) (*models.Article, error) {
	article, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Slug != nil && *upd.Slug != article.Slug {
		taken, err := s.slugTaken(ctx, *upd.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("Article with this slug already exists")
		}
	}

	fields := map[string]interface{}{}
	if upd.TitleEN != nil {
		fields["title_en"] = *upd.TitleEN
	}
	if upd.TitleFA != nil {
		fields["title_fa"] = *upd.TitleFA
	}
	if upd.Slug != nil {
		fields["slug"] = *upd.Slug
	}
	if upd.SummaryEN != nil {
		fields["summary_en"] = *upd.SummaryEN
	}
	if upd.SummaryFA != nil {
		fields["summary_fa"] = *upd.SummaryFA
	}
	if upd.ContentEN != nil {
		fields["content_en"] = *upd.ContentEN
	}
	if upd.ContentFA != nil {
		fields["content_fa"] = *upd.ContentFA
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}
	if upd.Tags != nil {
		fields["tags"] = *upd.Tags
	}
	if upd.Category != nil {
		fields["category"] = *upd.Category
	}
	if upd.Author != nil {
		fields["author"] = *upd.Author
	}
	if upd.IsPublished != nil {
		fields["is_published"] = *upd.IsPublished
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(article).Updates(fields).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}

	return s.GetByID(ctx, id)
}

func (s *ArticleStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Article{}, id)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Article not found")
	}
	return nil
}

// DistinctTags returns the sorted set of tags appearing on published
// articles. The tag field is comma-separated, so aggregation happens here
// rather than in SQL.
func (s *ArticleStore) DistinctTags(ctx context.Context) ([]string, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Select("tags").
		Where("is_published = ?", true).
		Find(&articles).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	seen := map[string]struct{}{}
	for i := range articles {
		for _, tag := range articles[i].TagList() {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// slugTaken reports whether slug belongs to an article other than excludeID.
func (s *ArticleStore) slugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&models.Article{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}
