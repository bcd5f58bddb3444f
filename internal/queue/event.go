// Package queue publishes bookmark lifecycle events to the message
// broker for downstream consumers (notifications, analytics) without
// those consumers querying the primary database.
package queue

// Queue names, which double as routing keys on the default exchange.
const (
	BookmarkCreatedQueue = "bookmark.created"
	BookmarkDeletedQueue = "bookmark.deleted"
)

// BookmarkEvent describes a single bookmark lifecycle change. The
// queue it arrives on tells consumers whether the bookmark was created
// or deleted.
type BookmarkEvent struct {
	BookmarkID uint64 `json:"bookmark_id"`
	UserID     uint64 `json:"user_id"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	OccurredAt string `json:"occurred_at"`
}
