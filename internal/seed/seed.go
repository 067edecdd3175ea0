// Package seed fills the database with demo users, groups and posts.
// Intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account logs in with.
const DefaultPassword = "password123"

var slugUnsafe = regexp.MustCompile(`[^-a-z0-9_]+`)

// Options configures a seeding run.
type Options struct {
	Users        int
	Groups       int
	PostsPerUser int
	// MaxDays spreads publication dates over this many days back from now.
	MaxDays  int
	Password string
	// Clean removes all existing posts, groups and users first.
	Clean bool
	// Seed makes the generated content reproducible. Zero picks a random seed.
	Seed int64
}

// DefaultOptions returns a small demo data set.
func DefaultOptions() Options {
	return Options{Users: 5, Groups: 3, PostsPerUser: 12, MaxDays: 90, Password: DefaultPassword}
}

// Result counts what a run created.
type Result struct {
	Users  int
	Groups int
	Posts  int
}

// Factory builds domain records and persists them through the repositories.
type Factory struct {
	db     *gorm.DB
	faker  *gofakeit.Faker
	users  *service.UserService
	groups repository.GroupRepository
	posts  repository.PostRepository
	now    func() time.Time
}

// NewFactory creates a Factory bound to db. seed 0 means non-deterministic output.
func NewFactory(db *gorm.DB, seed int64) *Factory {
	return &Factory{
		db:     db,
		faker:  gofakeit.New(seed),
		users:  service.NewUserService(repository.NewUserRepository(db)),
		groups: repository.NewGroupRepository(db),
		posts:  repository.NewPostRepository(db),
		now:    time.Now,
	}
}

// CreateUser registers a user with a generated, unique-looking username.
func (f *Factory) CreateUser(ctx context.Context, password string) (*models.User, error) {
	username := fmt.Sprintf("%s%d", f.faker.Username(), f.faker.Number(100, 999))
	return f.users.Register(ctx, username, password)
}

// CreateGroup stores a group whose slug is derived from a random word.
func (f *Factory) CreateGroup(ctx context.Context) (*models.Group, error) {
	word := f.faker.Noun()
	slug := slugUnsafe.ReplaceAllString(strings.ToLower(word), "-")
	group := &models.Group{
		Title:       strings.ToUpper(word[:1]) + word[1:],
		Slug:        fmt.Sprintf("%s-%d", strings.Trim(slug, "-"), f.faker.Number(100, 999)),
		Description: f.faker.Sentence(12),
	}
	if err := f.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// CreatePost stores a post by author, optionally filed under group, published
// up to maxDays ago.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, group *models.Group, maxDays int) (*models.Post, error) {
	if maxDays <= 0 {
		maxDays = 90
	}
	age := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	post := &models.Post{
		Text:     f.faker.Paragraph(1, 3, 12, "\n"),
		PubDate:  f.now().Add(-age),
		AuthorID: author.ID,
	}
	if group != nil {
		post.GroupID = &group.ID
	}
	if err := f.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Run seeds the database according to opts. Roughly one post in four is left
// without a group.
func Run(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	var res Result
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	if opts.Clean {
		if err := Clean(ctx, db); err != nil {
			return res, err
		}
	}

	f := NewFactory(db, opts.Seed)

	groups := make([]*models.Group, 0, opts.Groups)
	for i := 0; i < opts.Groups; i++ {
		g, err := f.CreateGroup(ctx)
		if err != nil {
			return res, fmt.Errorf("create group: %w", err)
		}
		groups = append(groups, g)
		res.Groups++
	}

	for i := 0; i < opts.Users; i++ {
		u, err := f.CreateUser(ctx, opts.Password)
		if err != nil {
			return res, fmt.Errorf("create user: %w", err)
		}
		res.Users++

		for j := 0; j < opts.PostsPerUser; j++ {
			var group *models.Group
			if len(groups) > 0 && f.faker.Number(1, 4) > 1 {
				group = groups[f.faker.Number(0, len(groups)-1)]
			}
			if _, err := f.CreatePost(ctx, u, group, opts.MaxDays); err != nil {
				return res, fmt.Errorf("create post: %w", err)
			}
			res.Posts++
		}
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		slog.Int("users", res.Users),
		slog.Int("groups", res.Groups),
		slog.Int("posts", res.Posts),
	)
	return res, nil
}

// Clean deletes every post, group and user, children first.
func Clean(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Post{}, &models.Group{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clean %T: %w", model, err)
			}
		}
		return nil
	})
}
