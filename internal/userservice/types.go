package userservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/sushihentaime/bloglist/internal/auth"
	"github.com/sushihentaime/bloglist/internal/common"
)

type UserService struct {
	repo   Repository
	hasher *PasswordHasher
	tokens *auth.TokenManager
	mb     common.MessageProducer
	logger *slog.Logger
}

// Repository is the user collection of the persistence layer.
type Repository interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Insert(ctx context.Context, u *User) error
	AddBlog(ctx context.Context, userID, blogID string) error
	RemoveBlog(ctx context.Context, userID, blogID string) error
}

type User struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	Password  Password      `json:"-"`
	BlogIDs   []string      `json:"-"`
	Blogs     []BlogSummary `json:"blogs"`
	CreatedAt time.Time     `json:"created_at"`
}

// BlogSummary is the part of an owned blog listed with its user.
type BlogSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Author string `json:"author"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// AuthToken is returned by a successful login.
type AuthToken struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type CreateUserRequest struct {
	// Username and Password keep their JSON type so the validator can reject non-strings.
	Username any    `json:"username"`
	Name     string `json:"name"`
	Password any    `json:"password"`
}
