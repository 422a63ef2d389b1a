package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id       BIGSERIAL PRIMARY KEY,
	username      VARCHAR(20) NOT NULL UNIQUE,
	email         VARCHAR(120) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	image_file    VARCHAR(64) NOT NULL DEFAULT 'default.jpg',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS posts (
	post_id    BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	title      VARCHAR(100) NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_posts_created ON posts (created_at DESC, post_id DESC);
CREATE INDEX IF NOT EXISTS idx_posts_user_created ON posts (user_id, created_at DESC, post_id DESC);
`

// Migrate creates the users and posts tables when they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	logQuery("migrate", nil, nil, err)
	return err
}
