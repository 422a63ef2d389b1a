package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"sync"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserReader defines read-only operations for users.
// A missing user is reported as (nil, nil).
type UserReader interface {
	GetByID(ctx context.Context, userID int64) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string) (int64, error)
	Update(ctx context.Context, userID int64, username, email, imageFile string) error
	DeleteCascading(ctx context.Context, userID int64) (int64, error)
}

// AuthService handles registration and credential checks.
type AuthService struct {
	reader UserReader
	writer UserWriter
	events Publisher
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, events Publisher) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		events: events,
	}
}

// Register creates an account after checking that neither the username nor the
// email is taken. When both are taken the returned error matches both
// ErrUsernameTaken and ErrEmailTaken. Nothing is written on failure.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) error {
	if err := checkTaken(ctx, svc.reader, nil, username, email); err != nil {
		if isTaken(err) {
			logger.Log.Infow("registration rejected", "username", username, "email", email, "reason", err)
		}
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	userID, err := svc.writer.Save(ctx, username, email, string(hashedPassword))
	if err != nil {
		if mapped := uniqueViolation(err); mapped != err {
			return mapped
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	svc.events.Publish(ctx, models.EventUserRegistered, userID, userID, 0)
	return nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy spends the same bcrypt work for unknown usernames as for known ones.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Authenticate looks the user up by exact username and checks the password.
func (svc *AuthService) Authenticate(ctx context.Context, username, password string) (*models.UserDB, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		compareDummy(password)
		logger.Log.Infow("login for unknown user", "username", username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
