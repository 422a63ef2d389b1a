package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-blog/internal/logger"
)

// SessionRevocationRepository remembers logged-out session ids in Redis
// until the session token would have expired on its own.
type SessionRevocationRepository struct {
	client *redis.Client
}

func NewSessionRevocationRepository(client *redis.Client) *SessionRevocationRepository {
	return &SessionRevocationRepository{client: client}
}

func revokedKey(sessionID string) string {
	return fmt.Sprintf("session:revoked:%s", sessionID)
}

// Revoke marks the session as ended. Already expired sessions are skipped.
func (r *SessionRevocationRepository) Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	key := revokedKey(sessionID)
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.Log.Debugw("revoke session",
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

func (r *SessionRevocationRepository) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	key := revokedKey(sessionID)
	n, err := r.client.Exists(ctx, key).Result()

	logger.Log.Debugw("check revoked session",
		"key", key,
		"result", n,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return n > 0, nil
}
