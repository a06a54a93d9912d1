package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"postboard/internal/middleware"
	"postboard/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Fixtures is the YAML document accepted by the seed command:
//
//	users:
//	  - username: alice
//	    email: alice@example.com
//	    posts:
//	      - title: Hello
//	        content: First post
type Fixtures struct {
	Users []FixtureUser `yaml:"users"`
}

type FixtureUser struct {
	Username string        `yaml:"username"`
	Email    string        `yaml:"email"`
	Password string        `yaml:"password"`
	Posts    []FixturePost `yaml:"posts"`
}

type FixturePost struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// LoadFixtures reads a fixtures file from disk.
func LoadFixtures(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseFixtures(f)
}

// ParseFixtures decodes and checks a fixtures document. Unknown keys are
// rejected so typos do not silently drop data.
func ParseFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	if err := fx.validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

func (fx *Fixtures) validate() error {
	usernames := make(map[string]bool, len(fx.Users))
	emails := make(map[string]bool, len(fx.Users))
	for i, u := range fx.Users {
		if u.Username == "" || u.Email == "" {
			return fmt.Errorf("user %d: username and email are required", i)
		}
		if usernames[u.Username] {
			return fmt.Errorf("user %d: duplicate username %q", i, u.Username)
		}
		if emails[u.Email] {
			return fmt.Errorf("user %d: duplicate email %q", i, u.Email)
		}
		usernames[u.Username] = true
		emails[u.Email] = true

		for j, p := range u.Posts {
			if p.Title == "" || p.Content == "" {
				return fmt.Errorf("user %q post %d: title and content are required", u.Username, j)
			}
		}
	}
	return nil
}

// ApplyFixtures writes every fixture user and their posts in one transaction.
func (s *Seeder) ApplyFixtures(ctx context.Context, fx *Fixtures) (Result, error) {
	var res Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, fu := range fx.Users {
			password := fu.Password
			if password == "" {
				password = DefaultPassword
			}
			user := &models.User{Username: fu.Username, Email: fu.Email, Password: password}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("create user %q: %w", fu.Username, err)
			}
			res.Users++

			for _, fp := range fu.Posts {
				post := &models.Post{Title: fp.Title, Content: fp.Content, UserID: user.ID}
				if err := tx.Omit("User").Create(post).Error; err != nil {
					return fmt.Errorf("create post %q: %w", fp.Title, err)
				}
				res.Posts++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	middleware.Logger.InfoContext(ctx, "applied fixtures",
		slog.Int("users", res.Users),
		slog.Int("posts", res.Posts),
	)
	return res, nil
}
