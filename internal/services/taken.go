package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// checkTaken reports ErrUsernameTaken and/or ErrEmailTaken (joined) when another
// user already holds username or email. Values still held by current are not
// checked, so a user may keep their own username and email.
func checkTaken(ctx context.Context, reader UserReader, current *models.UserDB, username, email string) error {
	var taken []error

	if current == nil || username != current.Username {
		other, err := reader.GetByUsername(ctx, username)
		if err != nil {
			logger.Log.Errorw("failed to check username", "err", err)
			return err
		}
		if other != nil && (current == nil || other.UserID != current.UserID) {
			taken = append(taken, ErrUsernameTaken)
		}
	}

	if current == nil || email != current.Email {
		other, err := reader.GetByEmail(ctx, email)
		if err != nil {
			logger.Log.Errorw("failed to check email", "err", err)
			return err
		}
		if other != nil && (current == nil || other.UserID != current.UserID) {
			taken = append(taken, ErrEmailTaken)
		}
	}

	return errors.Join(taken...)
}

func isTaken(err error) bool {
	return errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken)
}
