// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"fmt"

	"postboard/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	// UpdateEmail returns (nil, nil) when no user has the given id.
	UpdateEmail(ctx context.Context, id uint, email string) (*models.User, error)
	// DeleteWithPosts removes the user and every post it owns in one
	// transaction. It reports whether the user existed.
	DeleteWithPosts(ctx context.Context, id uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return conflictError(r.takenField(ctx, user, err), err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) UpdateEmail(ctx context.Context, id uint, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Model(&user).Update("email", email).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, conflictError("email", err)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) DeleteWithPosts(ctx context.Context, id uint) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("delete posts of user %d: %w", id, err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return found, nil
}

// takenField names the unique column user collides on. Translated driver
// errors drop the constraint name, in which case it is looked up.
func (r *userRepository) takenField(ctx context.Context, user *models.User, err error) string {
	if field := conflictingUserField(err); field != "" {
		return field
	}
	for _, column := range []string{"username", "email"} {
		value := user.Username
		if column == "email" {
			value = user.Email
		}
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.User{}).
			Where(column+" = ?", value).
			Count(&count).Error; err == nil && count > 0 {
			return column
		}
	}
	return ""
}

func conflictError(field string, err error) error {
	switch field {
	case "username":
		return models.NewConflictError("Username already registered", err)
	case "email":
		return models.NewConflictError("Email already registered", err)
	default:
		return models.NewConflictError("User already exists", err)
	}
}
