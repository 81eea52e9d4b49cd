package userservice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sushihentaime/bloglist/internal/auth"
	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrDuplicateUsername     = errors.New("user already exists")
	ErrAuthenticationFailure = errors.New("invalid username or password")
)

func NewUserService(repo Repository, hasher *PasswordHasher, tokens *auth.TokenManager, mb common.MessageProducer, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		mb:     mb,
		logger: logger,
	}
}

// CreateUser validates the input, stores the user with a hashed password and
// publishes a user.created event.
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if err := ValidateCredentials(req.Username, req.Password); err != nil {
		return nil, err
	}

	username := req.Username.(string)
	password := req.Password.(string)

	_, err := s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrDuplicateUsername
	case !errors.Is(err, common.ErrRecordNotFound):
		return nil, err
	}

	u := User{
		ID:       common.NewID(),
		Username: username,
		Name:     req.Name,
		BlogIDs:  []string{},
		Blogs:    []BlogSummary{},
	}

	if err := u.Password.set(s.hasher, password); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, &u); err != nil {
		return nil, err
	}

	s.publish(ctx, common.UserCreatedKey, common.Event{UserID: u.ID, Username: u.Username})

	return &u, nil
}

// LoginUser checks the credentials and returns a signed token for the user.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	if username == "" || password == "" {
		return nil, ErrAuthenticationFailure
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(s.hasher, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthToken{Token: token, Username: user.Username, Name: user.Name}, nil
}

// GetUsers returns every user with the summaries of the blogs they own.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []User{}
	}

	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*User, error) {
	if err := common.ParseID(id); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// IdentityByID implements auth.IdentityStore.
func (s *UserService) IdentityByID(ctx context.Context, id string) (*auth.Identity, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u.Identity(), nil
}

// AddBlog records blogID in the owned list of the user. It runs after the blog
// itself is stored and is not atomic with that write.
func (s *UserService) AddBlog(ctx context.Context, userID, blogID string) error {
	return s.repo.AddBlog(ctx, userID, blogID)
}

func (s *UserService) RemoveBlog(ctx context.Context, userID, blogID string) error {
	return s.repo.RemoveBlog(ctx, userID, blogID)
}

func (s *UserService) publish(ctx context.Context, key common.BindingKey, ev common.Event) {
	if err := common.PublishEvent(ctx, s.mb, key, ev); err != nil {
		s.logger.Warn("could not publish event", slog.String("key", string(key)), slog.String("error", err.Error()))
	}
}
