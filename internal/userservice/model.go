package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sushihentaime/bloglist/internal/common"
)

// DBModel is the postgres Repository.
type DBModel struct {
	db *sql.DB
}

func NewDBModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

const selectUsers = `
	SELECT u.id, u.username, u.name, u.password, u.blog_ids, u.created_at,
		b.id, b.title, b.url, b.author
	FROM users u
	LEFT JOIN blogs b ON b.id = ANY(u.blog_ids)`

func (m *DBModel) FindAll(ctx context.Context) ([]User, error) {
	query := selectUsers + `
	ORDER BY u.created_at, u.username, b.created_at`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (m *DBModel) FindByID(ctx context.Context, id string) (*User, error) {
	query := selectUsers + `
	WHERE u.id = $1
	ORDER BY b.created_at`

	return m.findOne(ctx, query, id)
}

func (m *DBModel) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := selectUsers + `
	WHERE u.username = $1
	ORDER BY b.created_at`

	return m.findOne(ctx, query, username)
}

func (m *DBModel) findOne(ctx context.Context, query string, arg any) (*User, error) {
	rows, err := m.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, common.ErrRecordNotFound
	}

	return &users[0], nil
}

func (m *DBModel) Insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, username, name, password, blog_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	if u.BlogIDs == nil {
		u.BlogIDs = []string{}
	}

	args := []any{
		u.ID,
		u.Username,
		u.Name,
		u.Password.hash,
		pq.Array(u.BlogIDs),
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		switch {
		case errors.As(err, &pqErr) && pqErr.Code == "23505":
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	return nil
}

func (m *DBModel) AddBlog(ctx context.Context, userID, blogID string) error {
	query := `
		UPDATE users
		SET blog_ids = array_append(blog_ids, $2::uuid)
		WHERE id = $1`

	return m.update(ctx, query, userID, blogID)
}

func (m *DBModel) RemoveBlog(ctx context.Context, userID, blogID string) error {
	query := `
		UPDATE users
		SET blog_ids = array_remove(blog_ids, $2::uuid)
		WHERE id = $1`

	return m.update(ctx, query, userID, blogID)
}

func (m *DBModel) update(ctx context.Context, query string, args ...any) error {
	res, err := m.db.ExecContext(ctx, query, args...)
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
			return errors.New("too many rows affected")
		}
	}

	return nil
}

// scanUsers folds the joined rows into users. Rows of the same user are adjacent.
func scanUsers(rows *sql.Rows) ([]User, error) {
	users := []User{}

	for rows.Next() {
		var u User
		var blogID, title, url, author sql.NullString

		err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Name,
			&u.Password.hash,
			pq.Array(&u.BlogIDs),
			&u.CreatedAt,
			&blogID,
			&title,
			&url,
			&author,
		)
		if err != nil {
			return nil, err
		}

		if n := len(users); n == 0 || users[n-1].ID != u.ID {
			u.Blogs = []BlogSummary{}
			if u.BlogIDs == nil {
				u.BlogIDs = []string{}
			}
			users = append(users, u)
		}

		if blogID.Valid {
			last := &users[len(users)-1]
			last.Blogs = append(last.Blogs, BlogSummary{
				ID:     blogID.String,
				Title:  title.String,
				URL:    url.String,
				Author: author.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
