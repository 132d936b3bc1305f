package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"listd/internal/apperr"
	"listd/internal/models"
)

// CreateUser persists a new account. A duplicate email reports Conflict.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	user := models.User{Email: email, PasswordHash: passwordHash}
	if err := s.conn(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, apperr.Conflict("email already in use")
		}
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

// UserByEmail resolves an email to an account.
func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound("user not found")
		}
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

// UserByID fetches an account by primary key.
func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound("user not found")
		}
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}
