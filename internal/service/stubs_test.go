package service

import (
	"context"
	"errors"

	"postboard/internal/models"
	"postboard/internal/notifications"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn          func(context.Context, *models.User) error
	getByIDFn         func(context.Context, uint) (*models.User, error)
	listFn            func(context.Context, int, int) ([]models.User, error)
	updateEmailFn     func(context.Context, uint, string) (*models.User, error)
	deleteWithPostsFn func(context.Context, uint) (bool, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) UpdateEmail(ctx context.Context, id uint, email string) (*models.User, error) {
	return s.updateEmailFn(ctx, id, email)
}
func (s *userRepoStub) DeleteWithPosts(ctx context.Context, id uint) (bool, error) {
	return s.deleteWithPostsFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(context.Context, *models.User) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.User, error) {
			return nil, errors.New("not implemented")
		},
		listFn:        func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		updateEmailFn: func(context.Context, uint, string) (*models.User, error) { return nil, nil },
		deleteWithPostsFn: func(context.Context, uint) (bool, error) {
			return false, nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	listFn          func(context.Context, int, int) ([]models.Post, error)
	listByUserFn    func(context.Context, uint, int, int) ([]models.Post, error)
	updateContentFn func(context.Context, uint, string) (*models.Post, error)
	deleteFn        func(context.Context, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) UpdateContent(ctx context.Context, id uint, content string) (*models.Post, error) {
	return s.updateContentFn(ctx, id, content)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Post, error) {
			return nil, errors.New("not implemented")
		},
		listFn:          func(context.Context, int, int) ([]models.Post, error) { return nil, nil },
		listByUserFn:    func(context.Context, uint, int, int) ([]models.Post, error) { return nil, nil },
		updateContentFn: func(context.Context, uint, string) (*models.Post, error) { return nil, nil },
		deleteFn:        func(context.Context, uint) (bool, error) { return false, nil },
	}
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []notifications.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event notifications.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
