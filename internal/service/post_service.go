// Package service holds the business rules between HTTP handlers and repositories.
package service

import (
	"context"

	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/observability"
	"yatube/internal/pagination"
	"yatube/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PostPage is one page of posts, newest first.
type PostPage = pagination.Of[models.Post]

type PostService struct {
	posts  repository.PostRepository
	groups repository.GroupRepository
	users  repository.UserRepository
}

func NewPostService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
) *PostService {
	return &PostService{posts: posts, groups: groups, users: users}
}

// ListPosts returns the requested page of all posts.
func (s *PostService) ListPosts(ctx context.Context, rawPage string) (page PostPage, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService", "ListPosts")
	defer func() { observability.EndSpan(span, err) }()

	total, err := s.posts.Count(ctx)
	if err != nil {
		return PostPage{}, err
	}
	pg := paginate(total, rawPage)
	items, err := s.posts.List(ctx, pg.Limit, pg.Offset)
	if err != nil {
		return PostPage{}, err
	}
	return pagination.With(pg, items), nil
}

// GroupPosts resolves a group by slug and returns the requested page of its posts.
func (s *PostService) GroupPosts(ctx context.Context, slug, rawPage string) (group *models.Group, page PostPage, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService", "GroupPosts", attribute.String("group.slug", slug))
	defer func() { observability.EndSpan(span, err) }()

	group, err = s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, PostPage{}, err
	}
	total, err := s.posts.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, PostPage{}, err
	}
	pg := paginate(total, rawPage)
	items, err := s.posts.ListByGroup(ctx, group.ID, pg.Limit, pg.Offset)
	if err != nil {
		return nil, PostPage{}, err
	}
	return group, pagination.With(pg, items), nil
}

// AuthorPosts resolves a user by username and returns the requested page of
// their posts. The page's Count is the author's total number of posts.
func (s *PostService) AuthorPosts(ctx context.Context, username, rawPage string) (author *models.User, page PostPage, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService", "AuthorPosts", attribute.String("user.username", username))
	defer func() { observability.EndSpan(span, err) }()

	author, err = s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, PostPage{}, err
	}
	total, err := s.posts.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, PostPage{}, err
	}
	pg := paginate(total, rawPage)
	items, err := s.posts.ListByAuthor(ctx, author.ID, pg.Limit, pg.Offset)
	if err != nil {
		return nil, PostPage{}, err
	}
	return author, pagination.With(pg, items), nil
}

// PostDetail returns a post with its author and the author's post count.
func (s *PostService) PostDetail(ctx context.Context, id uint) (post *models.Post, authorPosts int64, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService", "PostDetail", attribute.Int64("post.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	post, err = s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	authorPosts, err = s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, 0, err
	}
	return post, authorPosts, nil
}

// Groups lists the groups a post may be filed under.
func (s *PostService) Groups(ctx context.Context) ([]models.Group, error) {
	return s.groups.List(ctx)
}

// CreatePost validates form and publishes a post written by author.
// An invalid form yields a validation error and leaves the store untouched;
// the field messages stay on form.
func (s *PostService) CreatePost(ctx context.Context, author *models.User, form *forms.PostForm) (post *models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService", "CreatePost")
	defer func() { observability.EndSpan(span, err) }()

	if author == nil || author.ID == 0 {
		return nil, models.NewUnauthorizedError("authentication required")
	}
	valid, err := form.Validate(ctx, s.groups)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, models.NewValidationError("post form is invalid")
	}

	post = &models.Post{}
	form.Apply(post)
	post.AuthorID = author.ID
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	post.Author = *author

	middleware.PostsCreated.Inc()
	return post, nil
}

// EditablePost loads a post for editing by editor. A post written by someone
// else yields an unauthorized error.
func (s *PostService) EditablePost(ctx context.Context, editor *models.User, id uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if editor == nil || post.AuthorID != editor.ID {
		return nil, models.NewUnauthorizedError("only the author may edit this post")
	}
	return post, nil
}

// UpdatePost validates form and rewrites the text and group of post id.
// The author and publication date never change.
func (s *PostService) UpdatePost(ctx context.Context, editor *models.User, id uint, form *forms.PostForm) (post *models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService", "UpdatePost", attribute.Int64("post.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	post, err = s.EditablePost(ctx, editor, id)
	if err != nil {
		return nil, err
	}
	valid, err := form.Validate(ctx, s.groups)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, models.NewValidationError("post form is invalid")
	}

	form.Apply(post)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	middleware.PostsEdited.Inc()
	return post, nil
}

func paginate(total int64, rawPage string) pagination.Page {
	return pagination.Paginator{Count: total, PerPage: pagination.PostsPerPage}.Page(rawPage)
}
