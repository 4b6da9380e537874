package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/models"
)

// VideoStore owns video queries: the shared CRUD shape plus the view
// counter and the active toggle.
type VideoStore struct {
	*CRUDStore[models.Video]
	db *gorm.DB
}

func NewVideoStore(db *gorm.DB) *VideoStore {
	return &VideoStore{
		CRUDStore: NewCRUDStore[models.Video](db, "Video not found", "sort_order, created_at DESC"),
		db:        db,
	}
}

// ListVideos returns up to limit videos, optionally restricted to active
// ones, ordered by sort order then newest first.
func (s *VideoStore) ListVideos(ctx context.Context, activeOnly bool, limit int) ([]models.Video, error) {
	query := s.db.WithContext(ctx).Order("sort_order, created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var videos []models.Video
	if err := query.Limit(limit).Find(&videos).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return videos, nil
}

// GetAndCountView fetches a video and increments its view counter.
func (s *VideoStore) GetAndCountView(ctx context.Context, id uint) (*models.Video, error) {
	video, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(video).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	video.Views++
	return video, nil
}

// Toggle flips the active flag and returns the refreshed row.
func (s *VideoStore) Toggle(ctx context.Context, id uint) (*models.Video, error) {
	video, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(video).
		Update("active", !video.Active).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Video not found")
		}
		return nil, apperr.Internal(err)
	}
	return s.Get(ctx, id)
}
