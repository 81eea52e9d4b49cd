package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sushihentaime/bloglist/internal/auth"
	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/metrics"
	"github.com/sushihentaime/bloglist/internal/userservice"
	"golang.org/x/crypto/bcrypt"
)

// memStore backs both repositories so that users and blogs can be joined the
// way the real backends do.
type memStore struct {
	mu    sync.Mutex
	seq   int
	users map[string]*userservice.User
	blogs map[string]*blogservice.Blog
	order map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		users: map[string]*userservice.User{},
		blogs: map[string]*blogservice.Blog{},
		order: map[string]int{},
	}
}

func (s *memStore) next(id string) {
	s.seq++
	s.order[id] = s.seq
}

type memUsers struct{ *memStore }

type memBlogs struct{ *memStore }

func (s *memStore) userCopy(u *userservice.User) userservice.User {
	c := *u
	c.BlogIDs = append([]string{}, u.BlogIDs...)
	c.Blogs = []userservice.BlogSummary{}
	for _, id := range u.BlogIDs {
		if b, ok := s.blogs[id]; ok {
			c.Blogs = append(c.Blogs, userservice.BlogSummary{ID: b.ID, Title: b.Title, URL: b.URL, Author: b.Author})
		}
	}
	return c
}

func (s *memStore) blogCopy(b *blogservice.Blog) blogservice.Blog {
	c := *b
	if u, ok := s.users[b.UserID]; ok {
		c.User = &blogservice.Owner{ID: u.ID, Username: u.Username, Name: u.Name}
	}
	return c
}

func (r memUsers) FindAll(ctx context.Context) ([]userservice.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := []userservice.User{}
	for _, u := range r.users {
		users = append(users, r.userCopy(u))
	}
	sort.Slice(users, func(i, j int) bool { return r.order[users[i].ID] < r.order[users[j].ID] })
	return users, nil
}

func (r memUsers) FindByID(ctx context.Context, id string) (*userservice.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrRecordNotFound
	}
	c := r.userCopy(u)
	return &c, nil
}

func (r memUsers) FindByUsername(ctx context.Context, username string) (*userservice.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			c := r.userCopy(u)
			return &c, nil
		}
	}
	return nil, common.ErrRecordNotFound
}

func (r memUsers) Insert(ctx context.Context, u *userservice.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return userservice.ErrDuplicateUsername
		}
	}

	u.CreatedAt = time.Now().UTC()
	c := *u
	r.users[u.ID] = &c
	r.next(u.ID)
	return nil
}

func (r memUsers) AddBlog(ctx context.Context, userID, blogID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return common.ErrRecordNotFound
	}
	u.BlogIDs = append(u.BlogIDs, blogID)
	return nil
}

func (r memUsers) RemoveBlog(ctx context.Context, userID, blogID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return common.ErrRecordNotFound
	}
	kept := u.BlogIDs[:0]
	for _, id := range u.BlogIDs {
		if id != blogID {
			kept = append(kept, id)
		}
	}
	u.BlogIDs = kept
	return nil
}

func (r memBlogs) FindAll(ctx context.Context) ([]blogservice.Blog, error) {
	return r.filter(func(*blogservice.Blog) bool { return true }), nil
}

func (r memBlogs) FindByUserID(ctx context.Context, userID string) ([]blogservice.Blog, error) {
	return r.filter(func(b *blogservice.Blog) bool { return b.UserID == userID }), nil
}

func (r memBlogs) filter(keep func(*blogservice.Blog) bool) []blogservice.Blog {
	r.mu.Lock()
	defer r.mu.Unlock()

	blogs := []blogservice.Blog{}
	for _, b := range r.blogs {
		if keep(b) {
			blogs = append(blogs, r.blogCopy(b))
		}
	}
	sort.Slice(blogs, func(i, j int) bool { return r.order[blogs[i].ID] < r.order[blogs[j].ID] })
	return blogs
}

func (r memBlogs) FindByID(ctx context.Context, id string) (*blogservice.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blogs[id]
	if !ok {
		return nil, common.ErrRecordNotFound
	}
	c := r.blogCopy(b)
	return &c, nil
}

func (r memBlogs) Insert(ctx context.Context, b *blogservice.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[b.UserID]; !ok {
		return blogservice.ErrUserForeignKey
	}

	b.CreatedAt = time.Now().UTC()
	c := *b
	c.User = nil
	r.blogs[b.ID] = &c
	r.next(b.ID)
	return nil
}

func (r memBlogs) UpdateLikes(ctx context.Context, id string, likes int) (*blogservice.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blogs[id]
	if !ok {
		return nil, common.ErrRecordNotFound
	}
	b.Likes = likes
	c := r.blogCopy(b)
	return &c, nil
}

func (r memBlogs) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blogs[id]; !ok {
		return common.ErrRecordNotFound
	}
	delete(r.blogs, id)
	return nil
}

const testSecret = "test-secret"

func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &Config{
		Environment:    "testing",
		Version:        "test",
		Secret:         testSecret,
		BcryptCost:     bcrypt.MinCost,
		StoreDriver:    storeMongo,
		TrustedOrigins: []string{"http://localhost:5173"},
		RateLimitRPS:   2,
		RateLimitBurst: 4,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := newMemStore()
	tokens := auth.NewTokenManager([]byte(cfg.Secret))
	userService := userservice.NewUserService(memUsers{st}, userservice.NewPasswordHasher(cfg.BcryptCost), tokens, common.NopProducer{}, logger)
	m, reg := metrics.NewTestManagerAndRegistry()

	return &application{
		config:      cfg,
		logger:      logger,
		userService: userService,
		blogService: blogservice.NewBlogService(memBlogs{st}, common.NopProducer{}, logger),
		gate:        auth.NewGate(tokens, userService),
		metrics:     m,
		registry:    reg,
		cache:       common.NewCache(time.Minute, time.Minute),
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// readResponse decodes the body into dst when dst is non-nil and the body is not empty.
func readResponse(t *testing.T, res *http.Response, dst any) (int, http.Header) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	if dst != nil && len(responseBody) > 0 {
		err = json.Unmarshal(responseBody, dst)
		if err != nil {
			t.Fatal(err)
		}
	}

	return res.StatusCode, res.Header
}

func (ts *testServer) do(t *testing.T, method, path string, token string, payload any, dst any) (int, http.Header) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res, dst)
}

func (ts *testServer) post(t *testing.T, path, token string, payload, dst any) (int, http.Header) {
	return ts.do(t, http.MethodPost, path, token, payload, dst)
}

func (ts *testServer) get(t *testing.T, path, token string, dst any) (int, http.Header) {
	return ts.do(t, http.MethodGet, path, token, nil, dst)
}

func (ts *testServer) put(t *testing.T, path, token string, payload, dst any) (int, http.Header) {
	return ts.do(t, http.MethodPut, path, token, payload, dst)
}

func (ts *testServer) delete(t *testing.T, path, token string, dst any) (int, http.Header) {
	return ts.do(t, http.MethodDelete, path, token, nil, dst)
}

// signUp creates a user and logs in, returning the user id and token.
func (ts *testServer) signUp(t *testing.T, username string) (string, string) {
	t.Helper()

	var user userservice.User
	status, _ := ts.post(t, "/api/users", "", envelope{"username": username, "name": "Test " + username, "password": "salainen"}, &user)
	if status != http.StatusCreated {
		t.Fatalf("could not create user %s: status %d", username, status)
	}

	var login userservice.AuthToken
	status, _ = ts.post(t, "/api/login", "", envelope{"username": username, "password": "salainen"}, &login)
	if status != http.StatusOK {
		t.Fatalf("could not log in %s: status %d", username, status)
	}

	return user.ID, login.Token
}
