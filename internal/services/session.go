package services

//go:generate mockgen -source=session.go -destination=session_mock.go -package=services

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-blog/internal/jwt"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// SessionTokener issues session tokens and moves them through cookies.
type SessionTokener interface {
	Generate(ctx context.Context, userID int64, remember bool) (string, *jwt.Claims, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	SetCookie(w http.ResponseWriter, tokenString string, claims *jwt.Claims)
	ClearCookie(w http.ResponseWriter)
}

// SessionRevoker remembers sessions ended before their token expired.
type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// SessionService binds an authenticated user to the client through a signed cookie.
type SessionService struct {
	tokens  SessionTokener
	revoker SessionRevoker
	users   UserReader
}

// NewSessionService creates a new SessionService instance.
func NewSessionService(tokens SessionTokener, revoker SessionRevoker, users UserReader) *SessionService {
	return &SessionService{
		tokens:  tokens,
		revoker: revoker,
		users:   users,
	}
}

// Start issues a fresh session token for user. A remembered session survives browser restarts.
func (s *SessionService) Start(ctx context.Context, w http.ResponseWriter, user *models.UserDB, remember bool) error {
	token, claims, err := s.tokens.Generate(ctx, user.UserID, remember)
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "user_id", user.UserID, "error", err)
		return err
	}

	s.tokens.SetCookie(w, token, claims)
	logger.Log.Infow("session started", "user_id", user.UserID, "session_id", claims.SessionID(), "remember", remember)
	return nil
}

// End revokes the session carried by r, if any, and clears the cookie.
func (s *SessionService) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer s.tokens.ClearCookie(w)

	token, err := s.tokens.GetTokenFromRequest(ctx, r)
	if err != nil {
		return nil
	}
	claims, err := s.tokens.GetClaims(ctx, token)
	if err != nil {
		return nil
	}

	if err := s.revoker.Revoke(ctx, claims.SessionID(), claims.ExpiresAt.Time); err != nil {
		logger.Log.Errorw("failed to revoke session", "session_id", claims.SessionID(), "error", err)
		return err
	}

	logger.Log.Infow("session ended", "user_id", claims.UserID, "session_id", claims.SessionID())
	return nil
}

// Current resolves the identity of the session carried by r.
// It returns (nil, nil) for anonymous requests and for invalid, revoked or orphaned sessions.
func (s *SessionService) Current(ctx context.Context, r *http.Request) (*models.UserDB, error) {
	token, err := s.tokens.GetTokenFromRequest(ctx, r)
	if err != nil {
		return nil, nil
	}

	claims, err := s.tokens.GetClaims(ctx, token)
	if err != nil {
		logger.Log.Debugw("invalid session token", "error", err)
		return nil, nil
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.SessionID())
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, nil
	}

	return s.users.GetByID(ctx, claims.UserID)
}
