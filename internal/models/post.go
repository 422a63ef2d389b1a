package models

import "time"

// PostDB represents a post record in the database
type PostDB struct {
	PostID    int64     `json:"id" db:"post_id"`            // Primary key
	UserID    int64     `json:"user_id" db:"user_id"`       // Owner, references users.user_id
	Title     string    `json:"title" db:"title"`           // 1-100 chars
	Content   string    `json:"content" db:"content"`       // Body text
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Set once on insert
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last edit timestamp
}

// PostWithAuthor is a post joined with the public fields of its owner.
type PostWithAuthor struct {
	PostDB
	AuthorUsername  string `json:"author" db:"author_username"`
	AuthorImageFile string `json:"author_image_file" db:"author_image_file"`
}

// IsOwnedBy reports whether the post belongs to the given user.
func (p *PostDB) IsOwnedBy(user *UserDB) bool {
	return user != nil && p.UserID == user.UserID
}
