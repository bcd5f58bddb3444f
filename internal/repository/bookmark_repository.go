package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/bookmark-keeper/internal/model"
)

// BookmarkRepo persists rows of the 'bookmarks' table.
type BookmarkRepo struct{ DB *sql.DB }

func NewBookmarkRepo(db *sql.DB) *BookmarkRepo { return &BookmarkRepo{DB: db} }

const bookmarkColumns = "id,title,description,link,user_id,created_at,updated_at"

// Create inserts a bookmark owned by userID and returns the stored row.
func (r *BookmarkRepo) Create(ctx context.Context, userID uint64, title string, description *string, link string) (model.Bookmark, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookmarks (title, description, link, user_id) VALUES (?,?,?,?)",
		title, description, link, userID)
	if err != nil {
		return model.Bookmark{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Bookmark{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// ListByOwner returns every bookmark owned by userID in insertion order.
// An owner with no bookmarks gets an empty slice, not nil, so the
// handler serializes [] rather than null.
func (r *BookmarkRepo) ListByOwner(ctx context.Context, userID uint64) ([]model.Bookmark, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookmarkColumns+" FROM bookmarks WHERE user_id=? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Bookmark, 0)
	for rows.Next() {
		var b model.Bookmark
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Link, &b.UserID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// GetByID fetches a bookmark by id regardless of owner. Mutation
// handlers use it for the ownership check before writing.
func (r *BookmarkRepo) GetByID(ctx context.Context, id uint64) (model.Bookmark, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+bookmarkColumns+" FROM bookmarks WHERE id=? LIMIT 1", id))
}

// GetByIDAndOwner fetches a bookmark only when it is owned by userID.
// Foreign and absent bookmarks are indistinguishable to the caller.
func (r *BookmarkRepo) GetByIDAndOwner(ctx context.Context, id, userID uint64) (model.Bookmark, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+bookmarkColumns+" FROM bookmarks WHERE id=? AND user_id=? LIMIT 1", id, userID))
}

// Update applies the non-nil fields of upd to the bookmark, scoped to
// the owner so a row that vanished or changed hands since the caller's
// ownership check cannot be written. Returns the updated row.
func (r *BookmarkRepo) Update(ctx context.Context, id, userID uint64, upd model.BookmarkUpdate) (model.Bookmark, error) {
	if !upd.Empty() {
		set := make([]string, 0, 3)
		args := make([]any, 0, 5)
		if upd.Title != nil {
			set = append(set, "title=?")
			args = append(args, *upd.Title)
		}
		if upd.Description != nil {
			set = append(set, "description=?")
			args = append(args, *upd.Description)
		}
		if upd.Link != nil {
			set = append(set, "link=?")
			args = append(args, *upd.Link)
		}
		args = append(args, id, userID)
		res, err := r.DB.ExecContext(ctx,
			"UPDATE bookmarks SET "+strings.Join(set, ",")+" WHERE id=? AND user_id=?", args...)
		if err != nil {
			return model.Bookmark{}, err
		}
		// clientFoundRows is set on the DSN, so zero means no owned row.
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return model.Bookmark{}, ErrBookmarkNotFound
		}
	}
	return r.GetByIDAndOwner(ctx, id, userID)
}

// Delete removes the bookmark, scoped to the owner for the same reason
// as Update. ErrBookmarkNotFound when no owned row was deleted.
func (r *BookmarkRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM bookmarks WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

func (r *BookmarkRepo) scanOne(row *sql.Row) (model.Bookmark, error) {
	var b model.Bookmark
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.Link, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Bookmark{}, ErrBookmarkNotFound
	}
	return b, err
}
