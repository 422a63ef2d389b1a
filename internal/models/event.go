package models

// Event operations.
const (
	EventUserRegistered = "user_registered"
	EventUserUpdated    = "user_updated"
	EventUserDeleted    = "user_deleted"
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
)

// Event is an audit record published for every mutation of users and posts.
type Event struct {
	EventID   string `json:"event_id"`
	Timestamp int64  `json:"timestamp"`
	Operation string `json:"operation"`
	ActorID   int64  `json:"actor_id,omitempty"`
	UserID    int64  `json:"user_id,omitempty"`
	PostID    int64  `json:"post_id,omitempty"`
}
