package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/models"
)

// ContactStore owns contact form submissions.
type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Create(ctx context.Context, submission *models.ContactSubmission) error {
	if submission.Status == "" {
		submission.Status = "new"
	}
	if err := s.db.WithContext(ctx).Create(submission).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *ContactStore) List(ctx context.Context) ([]models.ContactSubmission, error) {
	var submissions []models.ContactSubmission
	err := s.db.WithContext(ctx).Order("submitted_at DESC").Find(&submissions).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return submissions, nil
}

func (s *ContactStore) Get(ctx context.Context, id uint) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	err := s.db.WithContext(ctx).First(&submission, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Submission not found")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &submission, nil
}

func (s *ContactStore) UpdateStatus(ctx context.Context, id uint, status string) (*models.ContactSubmission, error) {
	submission, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(submission).Update("status", status).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return submission, nil
}

func (s *ContactStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.ContactSubmission{}, id)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Submission not found")
	}
	return nil
}

// SingletonStore serves the single-row resources (company info and
// statistics): Get returns the one row, Upsert creates or updates it.
type SingletonStore[T any] struct {
	db       *gorm.DB
	notFound string
}

func NewSingletonStore[T any](db *gorm.DB, notFound string) *SingletonStore[T] {
	return &SingletonStore[T]{db: db, notFound: notFound}
}

func (s *SingletonStore[T]) Get(ctx context.Context) (*T, error) {
	var record T
	err := s.db.WithContext(ctx).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("%s", s.notFound)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &record, nil
}

// Upsert updates the existing row with fields, creating it from seed when
// no row exists yet.
func (s *SingletonStore[T]) Upsert(ctx context.Context, seed *T, fields map[string]interface{}) (*T, error) {
	existing, err := s.Get(ctx)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			if err := s.db.WithContext(ctx).Create(seed).Error; err != nil {
				return nil, apperr.Internal(err)
			}
			return seed, nil
		}
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(existing).Updates(fields).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return s.Get(ctx)
}
