package service

import (
	"context"

	"postboard/internal/models"
	"postboard/internal/notifications"
	"postboard/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	events   notifications.Publisher
}

type CreateUserInput struct {
	Username string `json:"username" form:"username" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UpdateEmailInput accepts any string, including the empty one.
type UpdateEmailInput struct {
	Email string `json:"new_email" form:"new_email"`
}

func NewUserService(userRepo repository.UserRepository, events notifications.Publisher) *UserService {
	return &UserService{
		userRepo: userRepo,
		events:   events,
	}
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.Event{Type: notifications.UserCreated, Resource: "users", ID: user.ID})
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, page Page) ([]models.User, error) {
	page = page.Normalize()
	return s.userRepo.List(ctx, page.Limit, page.Offset)
}

// UpdateEmail returns (nil, nil) when the user does not exist.
func (s *UserService) UpdateEmail(ctx context.Context, id uint, in UpdateEmailInput) (*models.User, error) {
	user, err := s.userRepo.UpdateEmail(ctx, id, in.Email)
	if err != nil || user == nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.Event{Type: notifications.UserEmailUpdated, Resource: "users", ID: user.ID})
	return user, nil
}

// DeleteUser removes the user together with its posts. A missing user is not an error.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	found, err := s.userRepo.DeleteWithPosts(ctx, id)
	if err != nil {
		return err
	}
	if found {
		publish(ctx, s.events, notifications.Event{Type: notifications.UserDeleted, Resource: "users", ID: id})
	}
	return nil
}
