package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/geosite/cms/internal/apperr"
)

// CRUDStore implements the shared create/read/update/delete shape for the
// simple resources (services, team members, certificates, licenses,
// projects). Resources with extra behavior get their own store.
type CRUDStore[T any] struct {
	db       *gorm.DB
	notFound string
	ordering string
}

func NewCRUDStore[T any](db *gorm.DB, notFound, ordering string) *CRUDStore[T] {
	return &CRUDStore[T]{db: db, notFound: notFound, ordering: ordering}
}

func (s *CRUDStore[T]) List(ctx context.Context) ([]T, error) {
	var records []T
	query := s.db.WithContext(ctx)
	if s.ordering != "" {
		query = query.Order(s.ordering)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return records, nil
}

// ListWhere is List with an extra condition.
func (s *CRUDStore[T]) ListWhere(ctx context.Context, cond string, args ...interface{}) ([]T, error) {
	var records []T
	query := s.db.WithContext(ctx).Where(cond, args...)
	if s.ordering != "" {
		query = query.Order(s.ordering)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return records, nil
}

func (s *CRUDStore[T]) Get(ctx context.Context, id uint) (*T, error) {
	var record T
	err := s.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("%s", s.notFound)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &record, nil
}

func (s *CRUDStore[T]) Create(ctx context.Context, record *T) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Update applies the given column/value pairs to the record with id and
// returns the refreshed row.
func (s *CRUDStore[T]) Update(ctx context.Context, id uint, fields map[string]interface{}) (*T, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(record).Updates(fields).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return s.Get(ctx, id)
}

func (s *CRUDStore[T]) Delete(ctx context.Context, id uint) error {
	var record T
	result := s.db.WithContext(ctx).Delete(&record, id)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("%s", s.notFound)
	}
	return nil
}
