package service

import (
	"context"

	"postboard/internal/models"
	"postboard/internal/notifications"
	"postboard/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	events   notifications.Publisher
}

type CreatePostInput struct {
	UserID  uint   `json:"user_id" form:"user_id" validate:"required,gt=0"`
	Title   string `json:"title" form:"title" validate:"required"`
	Content string `json:"content" form:"content" validate:"required"`
}

// UpdateContentInput accepts any string, including the empty one.
type UpdateContentInput struct {
	Content string `json:"content" form:"content"`
}

func NewPostService(postRepo repository.PostRepository, events notifications.Publisher) *PostService {
	return &PostService{
		postRepo: postRepo,
		events:   events,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.Event{
		Type:     notifications.PostCreated,
		Resource: "posts",
		ID:       post.ID,
		UserID:   post.UserID,
	})
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, page Page) ([]models.Post, error) {
	page = page.Normalize()
	return s.postRepo.List(ctx, page.Limit, page.Offset)
}

// ListUserPosts returns an empty slice for unknown users.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint, page Page) ([]models.Post, error) {
	page = page.Normalize()
	return s.postRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
}

// UpdateContent returns (nil, nil) when the post does not exist.
func (s *PostService) UpdateContent(ctx context.Context, id uint, in UpdateContentInput) (*models.Post, error) {
	post, err := s.postRepo.UpdateContent(ctx, id, in.Content)
	if err != nil || post == nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.Event{
		Type:     notifications.PostContentUpdated,
		Resource: "posts",
		ID:       post.ID,
		UserID:   post.UserID,
	})
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	removed, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		publish(ctx, s.events, notifications.Event{Type: notifications.PostDeleted, Resource: "posts", ID: id})
	}
	return nil
}
