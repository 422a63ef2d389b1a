package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/gw-blog/internal/pictures"
)

// Error variables
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidImage       = pictures.ErrInvalidImage
)

const pgUniqueViolation = "23505"

// uniqueViolation maps a unique constraint violation on users to the matching
// "already taken" error. Other errors are returned unchanged.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return ErrUsernameTaken
	case "users_email_key":
		return ErrEmailTaken
	}
	return err
}
