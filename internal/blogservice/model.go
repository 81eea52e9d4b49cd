package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrUserForeignKey = errors.New("user does not exist")
)

// DBModel is the postgres Repository.
type DBModel struct {
	db *sql.DB
}

func NewDBModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

const selectBlogs = `
	SELECT b.id, b.title, b.url, b.author, b.likes, b.user_id, b.created_at, u.username, u.name
	FROM blogs b
	JOIN users u ON b.user_id = u.id`

func (m *DBModel) Insert(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (id, title, url, author, likes, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	args := []any{b.ID, b.Title, b.URL, b.Author, b.Likes, b.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// FindByID joins the users table to populate the owner.
func (m *DBModel) FindByID(ctx context.Context, id string) (*Blog, error) {
	query := selectBlogs + `
	WHERE b.id = $1`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

func (m *DBModel) FindAll(ctx context.Context) ([]Blog, error) {
	query := selectBlogs + `
	ORDER BY b.created_at, b.id`

	return m.query(ctx, query)
}

func (m *DBModel) FindByUserID(ctx context.Context, userID string) ([]Blog, error) {
	query := selectBlogs + `
	WHERE b.user_id = $1
	ORDER BY b.created_at, b.id`

	return m.query(ctx, query, userID)
}

func (m *DBModel) UpdateLikes(ctx context.Context, id string, likes int) (*Blog, error) {
	query := `
		WITH b AS (
			UPDATE blogs
			SET likes = $2
			WHERE id = $1
			RETURNING *
		)
		SELECT b.id, b.title, b.url, b.author, b.likes, b.user_id, b.created_at, u.username, u.name
		FROM b
		JOIN users u ON b.user_id = u.id`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id, likes))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

func (m *DBModel) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *DBModel) query(ctx context.Context, query string, args ...any) ([]Blog, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner) (*Blog, error) {
	var blog Blog
	var owner Owner

	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.URL,
		&blog.Author,
		&blog.Likes,
		&blog.UserID,
		&blog.CreatedAt,
		&owner.Username,
		&owner.Name,
	)
	if err != nil {
		return nil, err
	}

	owner.ID = blog.UserID
	blog.User = &owner

	return &blog, nil
}
