package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

const userColumns = `user_id, username, email, password_hash, image_file, created_at, updated_at`

// UserReadRepository looks users up. Missing users are returned as (nil, nil).
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

func (r *UserReadRepository) GetByID(ctx context.Context, userID int64) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return r.get(ctx, query, userID)
}

func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.get(ctx, query, username)
}

func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.get(ctx, query, email)
}

func (r *UserReadRepository) get(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, arg)

	logQuery(query, []any{arg}, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository creates, updates and deletes users.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a user with the default picture and returns its id.
func (r *UserWriteRepository) Save(ctx context.Context, username, email, passwordHash string) (int64, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, image_file, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING user_id
	`
	args := []any{username, email, "[hidden]", models.DefaultImageFile}

	var userID int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &userID, query,
		username, email, passwordHash, models.DefaultImageFile)

	logQuery(query, args, userID, err)

	return userID, err
}

// Update overwrites the profile fields of a user in one statement.
func (r *UserWriteRepository) Update(ctx context.Context, userID int64, username, email, imageFile string) error {
	const query = `
		UPDATE users
		SET username = $2, email = $3, image_file = $4, updated_at = NOW()
		WHERE user_id = $1
	`
	args := []any{userID, username, email, imageFile}

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

// DeleteCascading removes the user and every post the user owns, atomically.
// It joins the request transaction when there is one, otherwise it opens its own.
// Returns the number of deleted posts.
func (r *UserWriteRepository) DeleteCascading(ctx context.Context, userID int64) (int64, error) {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return deleteUserAndPosts(ctx, tx, userID)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	deleted, err := deleteUserAndPosts(ctx, tx, userID)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return deleted, nil
}

func deleteUserAndPosts(ctx context.Context, tx *sqlx.Tx, userID int64) (int64, error) {
	const deletePosts = `DELETE FROM posts WHERE user_id = $1`
	const deleteUser = `DELETE FROM users WHERE user_id = $1`

	res, err := tx.ExecContext(ctx, deletePosts, userID)
	posts := affected(res)
	logQuery(deletePosts, []any{userID}, posts, err)
	if err != nil {
		return 0, err
	}

	res, err = tx.ExecContext(ctx, deleteUser, userID)
	users := affected(res)
	logQuery(deleteUser, []any{userID}, users, err)
	if err != nil {
		return 0, err
	}
	if users == 0 {
		return 0, sql.ErrNoRows
	}
	return posts, nil
}

func affected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}
