package services

//go:generate mockgen -source=profile.go -destination=profile_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// PictureSaver stores uploaded profile pictures.
type PictureSaver interface {
	Save(ctx context.Context, src io.Reader, filename string) (string, error)
	Remove(ctx context.Context, name string) error
}

// TxHooks defers side effects until the request transaction settles.
type TxHooks interface {
	AfterCommit(ctx context.Context, fn func())
	AfterRollback(ctx context.Context, fn func())
}

// Picture is an uploaded picture with its original file name.
type Picture struct {
	Filename string
	Data     io.Reader
}

// ProfileService updates and deletes accounts.
type ProfileService struct {
	reader   UserReader
	writer   UserWriter
	pictures PictureSaver
	hooks    TxHooks
	events   Publisher
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(reader UserReader, writer UserWriter, pictures PictureSaver, hooks TxHooks, events Publisher) *ProfileService {
	return &ProfileService{
		reader:   reader,
		writer:   writer,
		pictures: pictures,
		hooks:    hooks,
		events:   events,
	}
}

// Update changes username, email and, when picture is not nil, the profile picture of user.
// Uniqueness checks ignore the user's own current values. All fields are written in one
// statement; a picture stored for a failed update is removed again. The replaced
// picture is removed once the update commits.
func (svc *ProfileService) Update(ctx context.Context, user *models.UserDB, username, email string, picture *Picture) (*models.UserDB, error) {
	if err := checkTaken(ctx, svc.reader, user, username, email); err != nil {
		return nil, err
	}

	imageFile := user.ImageFile
	if picture != nil {
		name, err := svc.pictures.Save(ctx, picture.Data, picture.Filename)
		if err != nil {
			if errors.Is(err, ErrInvalidImage) {
				return nil, ErrInvalidImage
			}
			logger.Log.Errorw("failed to save picture", "user_id", user.UserID, "error", err)
			return nil, err
		}
		imageFile = name
	}

	if err := svc.writer.Update(ctx, user.UserID, username, email, imageFile); err != nil {
		if picture != nil {
			svc.removePicture(ctx, imageFile)
		}
		if mapped := uniqueViolation(err); mapped != err {
			return nil, mapped
		}
		logger.Log.Errorw("failed to update user", "user_id", user.UserID, "error", err)
		return nil, err
	}

	if picture != nil {
		svc.hooks.AfterRollback(ctx, func() { svc.removePicture(context.WithoutCancel(ctx), imageFile) })
		if old := user.ImageFile; old != imageFile {
			svc.hooks.AfterCommit(ctx, func() { svc.removePicture(context.WithoutCancel(ctx), old) })
		}
	}

	updated := *user
	updated.Username = username
	updated.Email = email
	updated.ImageFile = imageFile

	svc.events.Publish(ctx, models.EventUserUpdated, user.UserID, user.UserID, 0)
	return &updated, nil
}

// DeleteAccount deletes the account named username and all of its posts.
// Any authenticated actor may delete any account; deleting someone else's is logged.
// Returns the deleted user.
func (svc *ProfileService) DeleteAccount(ctx context.Context, actor *models.UserDB, username string) (*models.UserDB, error) {
	target, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "username", username, "error", err)
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if actor.UserID != target.UserID {
		logger.Log.Warnw("account deleted by another user",
			"actor_id", actor.UserID,
			"target_id", target.UserID,
			"target_username", target.Username,
		)
	}

	deletedPosts, err := svc.writer.DeleteCascading(ctx, target.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", target.UserID, "error", err)
		return nil, err
	}

	svc.hooks.AfterCommit(ctx, func() { svc.removePicture(context.WithoutCancel(ctx), target.ImageFile) })

	logger.Log.Infow("account deleted", "user_id", target.UserID, "deleted_posts", deletedPosts)
	svc.events.Publish(ctx, models.EventUserDeleted, actor.UserID, target.UserID, 0)
	return target, nil
}

func (svc *ProfileService) removePicture(ctx context.Context, name string) {
	if err := svc.pictures.Remove(ctx, name); err != nil {
		logger.Log.Errorw("failed to remove picture", "name", name, "error", err)
	}
}
