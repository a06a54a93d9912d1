// Package seed populates a database with demo users and posts, either
// generated with gofakeit or loaded from a YAML fixtures file. It is meant for
// local development only.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"postboard/internal/middleware"
	"postboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

const batchSize = 100

// DefaultPassword is stored on every generated user.
const DefaultPassword = "password123"

// Options controls a generated seed run.
type Options struct {
	NumUsers     int
	PostsPerUser int
	Clean        bool
}

// Result reports what a run wrote.
type Result struct {
	Users int
	Posts int
}

// Seeder writes demo data through a GORM handle.
type Seeder struct {
	db    *gorm.DB
	faker *gofakeit.Faker
}

// NewSeeder returns a Seeder. A zero seed picks a random one.
func NewSeeder(db *gorm.DB, seed int64) *Seeder {
	return &Seeder{db: db, faker: gofakeit.New(seed)}
}

// ClearAll removes every post and user.
func (s *Seeder) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("clear posts: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		return nil
	})
}

// BuildUser returns an unsaved user with unique-looking username and email.
func (s *Seeder) BuildUser() *models.User {
	suffix := s.faker.Number(1000, 9999)
	return &models.User{
		Username: fmt.Sprintf("%s%d", strings.ToLower(s.faker.Username()), suffix),
		Email:    fmt.Sprintf("%d.%s", suffix, strings.ToLower(s.faker.Email())),
		Password: DefaultPassword,
	}
}

// BuildPost returns an unsaved post owned by userID.
func (s *Seeder) BuildPost(userID uint) *models.Post {
	return &models.Post{
		Title:   strings.TrimSuffix(s.faker.Sentence(5), "."),
		Content: s.faker.Paragraph(1, 3, 12, "\n"),
		UserID:  userID,
	}
}

// Generate writes opts.NumUsers users with opts.PostsPerUser posts each.
func (s *Seeder) Generate(ctx context.Context, opts Options) (Result, error) {
	if opts.NumUsers < 0 || opts.PostsPerUser < 0 {
		return Result{}, errors.New("seed counts must not be negative")
	}

	if opts.Clean {
		if err := s.ClearAll(ctx); err != nil {
			return Result{}, err
		}
	}

	var res Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := make([]*models.User, 0, opts.NumUsers)
		for i := 0; i < opts.NumUsers; i++ {
			users = append(users, s.BuildUser())
		}
		if len(users) > 0 {
			if err := tx.CreateInBatches(users, batchSize).Error; err != nil {
				return fmt.Errorf("create users: %w", err)
			}
		}
		res.Users = len(users)

		posts := make([]*models.Post, 0, opts.NumUsers*opts.PostsPerUser)
		for _, u := range users {
			for j := 0; j < opts.PostsPerUser; j++ {
				posts = append(posts, s.BuildPost(u.ID))
			}
		}
		if len(posts) > 0 {
			if err := tx.Omit("User").CreateInBatches(posts, batchSize).Error; err != nil {
				return fmt.Errorf("create posts: %w", err)
			}
		}
		res.Posts = len(posts)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	middleware.Logger.InfoContext(ctx, "seeded generated data",
		slog.Int("users", res.Users),
		slog.Int("posts", res.Posts),
	)
	return res, nil
}
