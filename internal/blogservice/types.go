package blogservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

type Blog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
	// UserID is the owner. It never changes after creation.
	UserID    string    `json:"-"`
	User      *Owner    `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerID implements auth.Owned.
func (b *Blog) OwnerID() string {
	if b == nil {
		return ""
	}
	return b.UserID
}

// Owner is the part of the owning user listed with a blog.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Repository is the blog collection of the persistence layer.
type Repository interface {
	FindAll(ctx context.Context) ([]Blog, error)
	FindByID(ctx context.Context, id string) (*Blog, error)
	FindByUserID(ctx context.Context, userID string) ([]Blog, error)
	Insert(ctx context.Context, b *Blog) error
	UpdateLikes(ctx context.Context, id string, likes int) (*Blog, error)
	Delete(ctx context.Context, id string) error
}

type BlogService struct {
	repo   Repository
	mb     common.MessageProducer
	logger *slog.Logger
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	// Likes is nil when the field was absent or null.
	Likes *int   `json:"likes"`
	Owner *Owner `json:"-"`
}

type UpdateBlogRequest struct {
	Likes *int `json:"likes"`
}
