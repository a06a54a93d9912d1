package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"postboard/internal/models"
	"postboard/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceCreateUser(t *testing.T) {
	t.Run("success publishes user.created", func(t *testing.T) {
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, u *models.User) error {
			assert.Equal(t, "  alice ", u.Username)
			assert.Equal(t, "alice@example.com", u.Email)
			u.ID = 4
			return nil
		}
		pub := &recordingPublisher{}
		svc := NewUserService(repo, pub)

		user, err := svc.CreateUser(context.Background(), CreateUserInput{
			Username: "  alice ",
			Email:    "alice@example.com",
			Password: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(4), user.ID)
		assert.Equal(t, []string{notifications.UserCreated}, pub.types())
		assert.Equal(t, uint(4), pub.events[0].ID)
	})

	t.Run("validation reports every missing field", func(t *testing.T) {
		repo := noopUserRepo()
		repo.createFn = func(context.Context, *models.User) error {
			t.Fatal("repository must not be called")
			return nil
		}
		svc := NewUserService(repo, nil)

		_, err := svc.CreateUser(context.Background(), CreateUserInput{Email: "alice@example.com"})
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeValidation, appErr.Code)
		assert.Equal(t, "is required", appErr.Fields["username"])
		assert.Equal(t, "is required", appErr.Fields["password"])
		assert.NotContains(t, appErr.Fields, "email")
	})

	t.Run("values are stored as submitted", func(t *testing.T) {
		repo := noopUserRepo()
		long := strings.Repeat("u", 200)
		repo.createFn = func(_ context.Context, u *models.User) error {
			assert.Equal(t, long, u.Username)
			assert.Equal(t, "not-an-email", u.Email)
			return nil
		}

		user, err := NewUserService(repo, nil).CreateUser(context.Background(), CreateUserInput{
			Username: long,
			Email:    "not-an-email",
			Password: "p",
		})
		require.NoError(t, err)
		assert.Equal(t, "not-an-email", user.Email)
	})

	t.Run("conflict passes through without event", func(t *testing.T) {
		repo := noopUserRepo()
		repo.createFn = func(context.Context, *models.User) error {
			return models.NewConflictError("Username already registered", nil)
		}
		pub := &recordingPublisher{}
		svc := NewUserService(repo, pub)

		_, err := svc.CreateUser(context.Background(), CreateUserInput{Username: "a", Email: "a@b.co", Password: "p"})
		assert.True(t, models.HasCode(err, models.CodeConflict))
		assert.Empty(t, pub.events)
	})

	t.Run("publish failure does not fail the write", func(t *testing.T) {
		svc := NewUserService(noopUserRepo(), &recordingPublisher{err: errors.New("redis down")})

		user, err := svc.CreateUser(context.Background(), CreateUserInput{Username: "a", Email: "a@b.co", Password: "p"})
		require.NoError(t, err)
		assert.NotNil(t, user)
	})
}

func TestUserServiceListUsersNormalizesPage(t *testing.T) {
	tests := []struct {
		name           string
		page           Page
		expectedLimit  int
		expectedOffset int
	}{
		{"Defaults", Page{}, 100, 0},
		{"Explicit", Page{Limit: 10, Offset: 20}, 10, 20},
		{"Limit capped", Page{Limit: 1000}, 100, 0},
		{"Negative offset", Page{Limit: 5, Offset: -3}, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := noopUserRepo()
			repo.listFn = func(_ context.Context, limit, offset int) ([]models.User, error) {
				assert.Equal(t, tt.expectedLimit, limit)
				assert.Equal(t, tt.expectedOffset, offset)
				return []models.User{}, nil
			}
			_, err := NewUserService(repo, nil).ListUsers(context.Background(), tt.page)
			assert.NoError(t, err)
		})
	}
}

func TestUserServiceUpdateEmail(t *testing.T) {
	t.Run("missing user returns nil without event", func(t *testing.T) {
		pub := &recordingPublisher{}
		svc := NewUserService(noopUserRepo(), pub)

		user, err := svc.UpdateEmail(context.Background(), 9, UpdateEmailInput{Email: "x@example.com"})
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.Empty(t, pub.events)
	})

	t.Run("success", func(t *testing.T) {
		repo := noopUserRepo()
		repo.updateEmailFn = func(_ context.Context, id uint, email string) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", Email: email}, nil
		}
		pub := &recordingPublisher{}
		svc := NewUserService(repo, pub)

		user, err := svc.UpdateEmail(context.Background(), 2, UpdateEmailInput{Email: " new@example.com "})
		require.NoError(t, err)
		assert.Equal(t, " new@example.com ", user.Email)
		assert.Equal(t, []string{notifications.UserEmailUpdated}, pub.types())
	})

	t.Run("any string is accepted", func(t *testing.T) {
		for _, email := range []string{"nope", ""} {
			repo := noopUserRepo()
			repo.updateEmailFn = func(_ context.Context, id uint, got string) (*models.User, error) {
				assert.Equal(t, email, got)
				return &models.User{ID: id, Email: got}, nil
			}
			user, err := NewUserService(repo, nil).UpdateEmail(context.Background(), 2, UpdateEmailInput{Email: email})
			require.NoError(t, err)
			assert.Equal(t, email, user.Email)
		}
	})
}

func TestUserServiceDeleteUser(t *testing.T) {
	repo := noopUserRepo()
	repo.deleteWithPostsFn = func(_ context.Context, id uint) (bool, error) {
		return id == 1, nil
	}
	pub := &recordingPublisher{}
	svc := NewUserService(repo, pub)

	require.NoError(t, svc.DeleteUser(context.Background(), 1))
	require.NoError(t, svc.DeleteUser(context.Background(), 2))
	assert.Equal(t, []string{notifications.UserDeleted}, pub.types())

	repo.deleteWithPostsFn = func(context.Context, uint) (bool, error) {
		return false, models.NewInternalError(errors.New("tx aborted"))
	}
	assert.True(t, models.HasCode(svc.DeleteUser(context.Background(), 1), models.CodeInternal))
}
