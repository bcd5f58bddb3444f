package handler // handler defines http handlers

import (
	"context"
	"encoding/json"
	"net/mail"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bookmark-keeper/internal/model"
)

// UserStore is the slice of the persistence gateway the auth and user
// handlers need. *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string, firstName, lastName *string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	UpdateProfile(ctx context.Context, id uint64, upd model.UserUpdate) (model.User, error)
}

// BookmarkStore is the slice of the persistence gateway the bookmark
// handlers need. *repository.BookmarkRepo satisfies it.
type BookmarkStore interface {
	Create(ctx context.Context, userID uint64, title string, description *string, link string) (model.Bookmark, error)
	ListByOwner(ctx context.Context, userID uint64) ([]model.Bookmark, error)
	GetByID(ctx context.Context, id uint64) (model.Bookmark, error)
	GetByIDAndOwner(ctx context.Context, id, userID uint64) (model.Bookmark, error)
	Update(ctx context.Context, id, userID uint64, upd model.BookmarkUpdate) (model.Bookmark, error)
	Delete(ctx context.Context, id, userID uint64) error
}

// EventPublisher receives bookmark lifecycle notifications. Publishing
// is best-effort; implementations must not fail the request.
type EventPublisher interface {
	BookmarkCreated(ctx context.Context, b model.Bookmark)
	BookmarkDeleted(ctx context.Context, b model.Bookmark)
}

// bindStrict decodes the request body into v, rejecting bodies that
// carry fields v does not declare. Bodies are whitelist-validated:
// a typo'd or extraneous field is a client error, not something to
// silently drop.
func bindStrict(c echo.Context, v any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// validEmail accepts addresses net/mail can parse as a single bare
// address.
func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

// validLink accepts absolute http(s) URLs with a host.
func validLink(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
