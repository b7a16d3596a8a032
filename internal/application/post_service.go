package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/apperr"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-blog-api/internal/domain/repository"
)

// TokenResolver maps a bearer token to the calling user. Satisfied by
// AuthService; mutation calls always resolve the caller explicitly instead of
// reading identity from shared state.
type TokenResolver interface {
	ResolveUser(ctx context.Context, token string) (string, error)
}

// PostService performs CRUD on posts and enforces that only the owner may
// update or delete.
type PostService struct {
	Posts  repo.PostRepository
	Auth   TokenResolver
	Logger *logrus.Logger
}

func NewPostService(posts repo.PostRepository, auth TokenResolver, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Auth: auth, Logger: logger}
}

// List returns all posts in storage order. Storage failures surface as
// internal errors rather than an empty result.
func (s *PostService) List(ctx context.Context) ([]*entity.Post, error) {
	posts, err := s.Posts.List(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("list posts failed")
		}
		return nil, err
	}
	return posts, nil
}

type CreatePostInput struct {
	Title   string
	Content string
}

func (in CreatePostInput) validate() error {
	if in.Title == "" {
		return apperr.Validation("title is required")
	}
	if len(in.Title) > 255 {
		return apperr.Validation("title must be at most 255 characters long")
	}
	if in.Content == "" {
		return apperr.Validation("content is required")
	}
	return nil
}

// Create stores a new post owned by the token's user.
func (s *PostService) Create(ctx context.Context, token string, in CreatePostInput) (*entity.Post, error) {
	uid, err := s.Auth.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &entity.Post{Title: in.Title, Content: in.Content, UserID: uid}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns one post by id. No ownership restriction on reads.
func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	return s.Posts.GetByID(ctx, id)
}

type UpdatePostInput struct {
	Title   string
	Content string
}

// Update applies the provided title/content changes to an owned post.
// A missing post is not-found even for a non-owner; the ownership check only
// runs against a post that exists.
func (s *PostService) Update(ctx context.Context, token, id string, in UpdatePostInput) (*entity.Post, error) {
	uid, err := s.Auth.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}

	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != uid {
		return nil, apperr.Forbidden("you do not own this post")
	}

	if in.Title != "" {
		if len(in.Title) > 255 {
			return nil, apperr.Validation("title must be at most 255 characters long")
		}
		p.Title = in.Title
	}
	if in.Content != "" {
		p.Content = in.Content
	}

	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete permanently removes an owned post. Same ordering as Update:
// existence first, then ownership.
func (s *PostService) Delete(ctx context.Context, token, id string) error {
	uid, err := s.Auth.ResolveUser(ctx, token)
	if err != nil {
		return err
	}

	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != uid {
		return apperr.Forbidden("you do not own this post")
	}

	return s.Posts.Delete(ctx, p.ID)
}
