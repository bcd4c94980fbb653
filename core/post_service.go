package core

import (
	"context"
	"fmt"
	"strings"
)

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostView is the outward shape of a post.
type PostView struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Writer  string `json:"writer"`
	Content string `json:"content"`
}

// PostService validates input, resolves the acting user, enforces that only
// a post's writer may mutate it, and orchestrates the repositories.
type PostService struct {
	posts          PostRepository
	users          UserRepository
	allowAnonymous bool
}

func NewPostService(posts PostRepository, users UserRepository, allowAnonymous bool) *PostService {
	return &PostService{posts: posts, users: users, allowAnonymous: allowAnonymous}
}

// FindOne returns the post with the given id.
func (s *PostService) FindOne(ctx context.Context, id int64) (PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return PostView{}, err
	}
	writer, err := s.users.FindByID(ctx, post.WriterID)
	if err != nil {
		return PostView{}, err
	}
	return PostView{ID: post.ID, Title: post.Title, Writer: writer.Username, Content: post.Content}, nil
}

// Write creates a post owned by the acting user. With anonymous posting
// enabled, an empty actor attributes the post to the reserved anonymous
// account instead.
func (s *PostService) Write(ctx context.Context, in PostInput, actor string) (PostView, error) {
	if err := validatePostInput(in); err != nil {
		return PostView{}, err
	}

	if actor == "" {
		if !s.allowAnonymous {
			return PostView{}, ErrUnauthorized
		}
		actor = AnonymousUsername
	}

	writer, err := s.users.FindByUsername(ctx, actor)
	if err != nil {
		return PostView{}, err
	}

	id, err := s.posts.Create(ctx, in.Title, in.Content, writer.ID)
	if err != nil {
		return PostView{}, err
	}
	return PostView{ID: id, Title: in.Title, Writer: writer.Username, Content: in.Content}, nil
}

// Edit mutates title and content of an existing post. Only the writer may
// edit; ownership is compared by user id, not by name.
func (s *PostService) Edit(ctx context.Context, id int64, in PostInput, actor string) (PostView, error) {
	if err := validatePostInput(in); err != nil {
		return PostView{}, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return PostView{}, err
	}
	user, err := s.users.FindByUsername(ctx, actor)
	if err != nil {
		return PostView{}, err
	}
	if post.WriterID != user.ID {
		return PostView{}, fmt.Errorf("%w: only the writer may edit this post", ErrPermissionDenied)
	}

	if err := s.posts.Update(ctx, id, in.Title, in.Content); err != nil {
		return PostView{}, err
	}
	return PostView{ID: id, Title: in.Title, Writer: user.Username, Content: in.Content}, nil
}

// Delete removes a post permanently. Only the writer may delete.
func (s *PostService) Delete(ctx context.Context, id int64, actor string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user, err := s.users.FindByUsername(ctx, actor)
	if err != nil {
		return err
	}
	if post.WriterID != user.ID {
		return fmt.Errorf("%w: only the writer may delete this post", ErrPermissionDenied)
	}

	return s.posts.Delete(ctx, id)
}

func validatePostInput(in PostInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	return nil
}
