package services

//go:generate mockgen -source=post.go -destination=post_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// PostReader defines read operations for posts.
// A missing post is reported as (nil, nil).
type PostReader interface {
	GetByID(ctx context.Context, postID int64) (*models.PostWithAuthor, error)
	List(ctx context.Context, limit, offset int) ([]models.PostWithAuthor, error)
	Count(ctx context.Context) (int, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]models.PostWithAuthor, error)
	CountByUserID(ctx context.Context, userID int64) (int, error)
}

// PostWriter defines write operations for posts.
// Update and Delete return sql.ErrNoRows when the post is gone.
type PostWriter interface {
	Save(ctx context.Context, userID int64, title, content string) (int64, error)
	Update(ctx context.Context, postID int64, title, content string) error
	Delete(ctx context.Context, postID int64) error
}

// PostService lists posts and lets owners change them.
type PostService struct {
	reader PostReader
	writer PostWriter
	users  UserReader
	events Publisher
}

// NewPostService creates a new PostService instance.
func NewPostService(reader PostReader, writer PostWriter, users UserReader, events Publisher) *PostService {
	return &PostService{
		reader: reader,
		writer: writer,
		users:  users,
		events: events,
	}
}

// Home returns the given page of all posts, newest first.
// Pages out of range are empty.
func (svc *PostService) Home(ctx context.Context, page int) (*models.PostPage, error) {
	total, err := svc.reader.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count posts", "error", err)
		return nil, err
	}

	result := newPage(page, total)
	if !pageInRange(page, total) {
		return result, nil
	}

	posts, err := svc.reader.List(ctx, models.PostsPerPage, (page-1)*models.PostsPerPage)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "page", page, "error", err)
		return nil, err
	}
	result.Posts = posts
	return result, nil
}

// UserPosts returns the given page of the posts written by username.
// An unknown username yields an empty page with a nil User.
func (svc *PostService) UserPosts(ctx context.Context, username string, page int) (*models.UserPostPage, error) {
	user, err := svc.users.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "username", username, "error", err)
		return nil, err
	}
	if user == nil {
		return &models.UserPostPage{PostPage: *newPage(page, 0)}, nil
	}

	total, err := svc.reader.CountByUserID(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to count user posts", "user_id", user.UserID, "error", err)
		return nil, err
	}

	result := &models.UserPostPage{User: user, PostPage: *newPage(page, total)}
	if !pageInRange(page, total) {
		return result, nil
	}

	posts, err := svc.reader.ListByUserID(ctx, user.UserID, models.PostsPerPage, (page-1)*models.PostsPerPage)
	if err != nil {
		logger.Log.Errorw("failed to list user posts", "user_id", user.UserID, "page", page, "error", err)
		return nil, err
	}
	result.Posts = posts
	return result, nil
}

func newPage(page, total int) *models.PostPage {
	return &models.PostPage{
		Posts:   []models.PostWithAuthor{},
		Page:    page,
		PerPage: models.PostsPerPage,
		Total:   total,
	}
}

func pageInRange(page, total int) bool {
	return page >= 1 && page-1 < (total+models.PostsPerPage-1)/models.PostsPerPage
}

// Get returns a single post or ErrPostNotFound.
func (svc *PostService) Get(ctx context.Context, postID int64) (*models.PostWithAuthor, error) {
	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", postID, "error", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Create stores a new post owned by author and returns its id.
func (svc *PostService) Create(ctx context.Context, author *models.UserDB, title, content string) (int64, error) {
	postID, err := svc.writer.Save(ctx, author.UserID, title, content)
	if err != nil {
		logger.Log.Errorw("failed to save post", "user_id", author.UserID, "error", err)
		return 0, err
	}

	svc.events.Publish(ctx, models.EventPostCreated, author.UserID, author.UserID, postID)
	return postID, nil
}

// GetOwned returns the post when user owns it.
// A missing post yields ErrPostNotFound, somebody else's post ErrForbidden.
func (svc *PostService) GetOwned(ctx context.Context, user *models.UserDB, postID int64) (*models.PostWithAuthor, error) {
	post, err := svc.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(user) {
		logger.Log.Warnw("post access forbidden", "post_id", postID, "owner_id", post.UserID, "user_id", user.UserID)
		return nil, ErrForbidden
	}
	return post, nil
}

// Update changes title and content of a post owned by user.
// The ownership check and the write are separate statements.
func (svc *PostService) Update(ctx context.Context, user *models.UserDB, postID int64, title, content string) error {
	if _, err := svc.GetOwned(ctx, user, postID); err != nil {
		return err
	}

	if err := svc.writer.Update(ctx, postID, title, content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		logger.Log.Errorw("failed to update post", "post_id", postID, "error", err)
		return err
	}

	svc.events.Publish(ctx, models.EventPostUpdated, user.UserID, user.UserID, postID)
	return nil
}

// Delete removes a post owned by user.
func (svc *PostService) Delete(ctx context.Context, user *models.UserDB, postID int64) error {
	if _, err := svc.GetOwned(ctx, user, postID); err != nil {
		return err
	}

	if err := svc.writer.Delete(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		logger.Log.Errorw("failed to delete post", "post_id", postID, "error", err)
		return err
	}

	svc.events.Publish(ctx, models.EventPostDeleted, user.UserID, user.UserID, postID)
	return nil
}
