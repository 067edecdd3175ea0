package service

import (
	"context"
	"errors"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	PasswordCost = bcrypt.MinCost
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	updateFn        func(context.Context, *models.Post) error
	listFn          func(context.Context, int, int) ([]models.Post, error)
	listByGroupFn   func(context.Context, uint, int, int) ([]models.Post, error)
	listByAuthorFn  func(context.Context, uint, int, int) ([]models.Post, error)
	countFn         func(context.Context) (int64, error)
	countByGroupFn  func(context.Context, uint) (int64, error)
	countByAuthorFn func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]models.Post, error) {
	return s.listByGroupFn(ctx, groupID, limit, offset)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *postRepoStub) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	return s.countByGroupFn(ctx, groupID)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Post, error) { return nil, models.NewNotFoundError("Post", id, nil) },
		updateFn:        func(_ context.Context, _ *models.Post) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.Post, error) { return nil, nil },
		listByGroupFn:   func(_ context.Context, _ uint, _, _ int) ([]models.Post, error) { return nil, nil },
		listByAuthorFn:  func(_ context.Context, _ uint, _, _ int) ([]models.Post, error) { return nil, nil },
		countFn:         func(_ context.Context) (int64, error) { return 0, nil },
		countByGroupFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countByAuthorFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// groupRepoStub is a stub for repository.GroupRepository keyed by ID and slug.
type groupRepoStub struct {
	groups []models.Group
	err    error
}

func (s *groupRepoStub) Create(_ context.Context, g *models.Group) error {
	g.ID = uint(len(s.groups) + 1)
	s.groups = append(s.groups, *g)
	return nil
}
func (s *groupRepoStub) GetByID(_ context.Context, id uint) (*models.Group, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.groups {
		if s.groups[i].ID == id {
			g := s.groups[i]
			return &g, nil
		}
	}
	return nil, models.NewNotFoundError("Group", id, nil)
}
func (s *groupRepoStub) GetBySlug(_ context.Context, slug string) (*models.Group, error) {
	for i := range s.groups {
		if s.groups[i].Slug == slug {
			g := s.groups[i]
			return &g, nil
		}
	}
	return nil, models.NewNotFoundError("Group", slug, nil)
}
func (s *groupRepoStub) List(_ context.Context) ([]models.Group, error) {
	return s.groups, s.err
}
func (s *groupRepoStub) Delete(_ context.Context, _ uint) error {
	return errors.New("not implemented")
}

// userRepoStub is an in-memory repository.UserRepository.
type userRepoStub struct {
	users     map[string]*models.User
	createErr error
	deleted   []uint
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[string]*models.User{}}
}

func (s *userRepoStub) Create(_ context.Context, u *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	u.ID = uint(len(s.users) + 1)
	cp := *u
	s.users[u.Username] = &cp
	return nil
}
func (s *userRepoStub) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			cp.Password = ""
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("User", id, nil)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.GetCredentials(ctx, username)
	if err != nil {
		return nil, err
	}
	u.Password = ""
	return u, nil
}
func (s *userRepoStub) GetCredentials(_ context.Context, username string) (*models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, models.NewNotFoundError("User", username, nil)
	}
	cp := *u
	return &cp, nil
}
func (s *userRepoStub) Delete(_ context.Context, id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
}
