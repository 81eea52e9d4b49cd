package blogservice

import (
	"context"
	"log/slog"

	"github.com/sushihentaime/bloglist/internal/common"
)

func NewBlogService(repo Repository, mb common.MessageProducer, logger *slog.Logger) *BlogService {
	return &BlogService{repo: repo, mb: mb, logger: logger}
}

// CreateBlog stores a new blog owned by req.Owner. Likes default to 0 when
// the request carried none.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	title := sanitize(req.Title)
	author := sanitize(req.Author)
	url := req.URL

	v := common.NewValidator()
	validateBlog(v, title, url)
	if req.Likes != nil {
		validateLikes(v, req.Likes)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if req.Owner == nil {
		return nil, common.ErrUnauthorized
	}

	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
	}

	b := Blog{
		ID:     common.NewID(),
		Title:  title,
		URL:    url,
		Author: author,
		Likes:  likes,
		UserID: req.Owner.ID,
		User:   req.Owner,
	}

	if err := s.repo.Insert(ctx, &b); err != nil {
		return nil, err
	}

	s.publish(ctx, common.BlogCreatedKey, common.Event{UserID: b.UserID, Username: b.User.Username, BlogID: b.ID, Title: b.Title})

	return &b, nil
}

func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	if err := common.ParseID(id); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// GetBlogs returns every blog with its owner populated.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	blogs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if blogs == nil {
		blogs = []Blog{}
	}

	return blogs, nil
}

func (s *BlogService) GetBlogsByUserID(ctx context.Context, userID string) ([]Blog, error) {
	if err := common.ParseID(userID); err != nil {
		return nil, err
	}

	blogs, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if blogs == nil {
		blogs = []Blog{}
	}

	return blogs, nil
}

// UpdateBlogLikes replaces the likes of a blog. Ownership is checked by the caller.
func (s *BlogService) UpdateBlogLikes(ctx context.Context, id string, likes *int) (*Blog, error) {
	if err := common.ParseID(id); err != nil {
		return nil, err
	}

	v := common.NewValidator()
	validateLikes(v, likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.repo.UpdateLikes(ctx, id, *likes)
}

// DeleteBlog removes b. Ownership is checked by the caller.
func (s *BlogService) DeleteBlog(ctx context.Context, b *Blog) error {
	if err := s.repo.Delete(ctx, b.ID); err != nil {
		return err
	}

	s.publish(ctx, common.BlogDeletedKey, common.Event{UserID: b.UserID, BlogID: b.ID, Title: b.Title})

	return nil
}

// GetStats aggregates over a snapshot of every stored blog.
func (s *BlogService) GetStats(ctx context.Context) (*Stats, error) {
	blogs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return NewStats(blogs), nil
}

func (s *BlogService) publish(ctx context.Context, key common.BindingKey, ev common.Event) {
	if err := common.PublishEvent(ctx, s.mb, key, ev); err != nil {
		s.logger.Warn("could not publish event", slog.String("key", string(key)), slog.String("error", err.Error()))
	}
}
