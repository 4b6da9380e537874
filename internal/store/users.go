package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/models"
)

// UserStore owns all user account queries.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	IsAdmin  *bool
	IsActive *bool
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

func (s *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// Create inserts a new user, rejecting a username or email already in use.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", user.Username, user.Email).
		Count(&count).Error
	if err != nil {
		return apperr.Internal(err)
	}
	if count > 0 {
		return apperr.Conflict("User with this username or email already exists")
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Update applies a partial update, checking username/email uniqueness
// against every other user.
func (s *UserStore) Update(ctx context.Context, id uint, upd UserUpdate) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil && *upd.Username != user.Username {
		taken, err := s.fieldTaken(ctx, "username", *upd.Username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("Username already taken")
		}
	}
	if upd.Email != nil && *upd.Email != user.Email {
		taken, err := s.fieldTaken(ctx, "email", *upd.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("Email already taken")
		}
	}

	fields := map[string]interface{}{}
	if upd.Username != nil {
		fields["username"] = *upd.Username
	}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.IsAdmin != nil {
		fields["is_admin"] = *upd.IsAdmin
	}
	if upd.IsActive != nil {
		fields["is_active"] = *upd.IsActive
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(fields).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}

	return s.GetByID(ctx, id)
}

func (s *UserStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// CountAdmins reports the number of administrator accounts.
func (s *UserStore) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("is_admin = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

func (s *UserStore) fieldTaken(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where(column+" = ?", value).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}
