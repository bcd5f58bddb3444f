package model

import "time"

// Bookmark mirrors the `bookmarks` table. Every bookmark belongs to
// exactly one user; UserID is the owning side of the foreign key.
type Bookmark struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Link        string    `json:"link"`
	UserID      uint64    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookmarkUpdate carries a partial bookmark edit, pointer semantics as
// in UserUpdate.
type BookmarkUpdate struct {
	Title       *string
	Description *string
	Link        *string
}

// Empty reports whether the update changes nothing.
func (b BookmarkUpdate) Empty() bool {
	return b.Title == nil && b.Description == nil && b.Link == nil
}
