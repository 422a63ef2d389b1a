package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

const postWithAuthorSelect = `
	SELECT p.post_id, p.user_id, p.title, p.content, p.created_at, p.updated_at,
	       u.username AS author_username, u.image_file AS author_image_file
	FROM posts p
	JOIN users u ON u.user_id = p.user_id
`

// PostReadRepository reads posts joined with their authors.
// Listings are ordered newest first, ties broken by id so pages are stable.
type PostReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPostReadRepository(db *sqlx.DB, txGetter TxGetter) *PostReadRepository {
	return &PostReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns (nil, nil) when the post does not exist.
func (r *PostReadRepository) GetByID(ctx context.Context, postID int64) (*models.PostWithAuthor, error) {
	const query = postWithAuthorSelect + `WHERE p.post_id = $1`

	var post models.PostWithAuthor
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &post, query, postID)

	logQuery(query, []any{postID}, post.PostID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostReadRepository) List(ctx context.Context, limit, offset int) ([]models.PostWithAuthor, error) {
	const query = postWithAuthorSelect + `
		ORDER BY p.created_at DESC, p.post_id DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

func (r *PostReadRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]models.PostWithAuthor, error) {
	const query = postWithAuthorSelect + `
		WHERE p.user_id = $3
		ORDER BY p.created_at DESC, p.post_id DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset, userID)
}

func (r *PostReadRepository) list(ctx context.Context, query string, args ...any) ([]models.PostWithAuthor, error) {
	posts := []models.PostWithAuthor{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &posts, query, args...)

	logQuery(query, args, len(posts), err)

	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostReadRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM posts`
	return r.count(ctx, query)
}

func (r *PostReadRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM posts WHERE user_id = $1`
	return r.count(ctx, query, userID)
}

func (r *PostReadRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var total int
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &total, query, args...)

	logQuery(query, args, total, err)

	return total, err
}

// PostWriteRepository creates, updates and deletes posts.
type PostWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPostWriteRepository(db *sqlx.DB, txGetter TxGetter) *PostWriteRepository {
	return &PostWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a post owned by userID and returns its id.
func (r *PostWriteRepository) Save(ctx context.Context, userID int64, title, content string) (int64, error) {
	const query = `
		INSERT INTO posts (user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING post_id
	`
	args := []any{userID, title, content}

	var postID int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &postID, query, args...)

	logQuery(query, args, postID, err)

	return postID, err
}

// Update changes title and content. created_at is never touched.
func (r *PostWriteRepository) Update(ctx context.Context, postID int64, title, content string) error {
	const query = `
		UPDATE posts
		SET title = $2, content = $3, updated_at = NOW()
		WHERE post_id = $1
	`
	args := []any{postID, title, content}
	return r.exec(ctx, query, args)
}

func (r *PostWriteRepository) Delete(ctx context.Context, postID int64) error {
	const query = `DELETE FROM posts WHERE post_id = $1`
	return r.exec(ctx, query, []any{postID})
}

// exec returns sql.ErrNoRows when the statement matched nothing.
func (r *PostWriteRepository) exec(ctx context.Context, query string, args []any) error {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	rowsAffected := affected(res)

	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
