package handler

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/bookmark-keeper/internal/middleware"
	"github.com/iliyamo/bookmark-keeper/internal/model"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, email, passwordHash string, firstName, lastName *string) (model.User, error) {
	args := m.Called(ctx, email, passwordHash, firstName, lastName)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id uint64, upd model.UserUpdate) (model.User, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(model.User), args.Error(1)
}

type mockBookmarkStore struct {
	mock.Mock
}

func (m *mockBookmarkStore) Create(ctx context.Context, userID uint64, title string, description *string, link string) (model.Bookmark, error) {
	args := m.Called(ctx, userID, title, description, link)
	return args.Get(0).(model.Bookmark), args.Error(1)
}

func (m *mockBookmarkStore) ListByOwner(ctx context.Context, userID uint64) ([]model.Bookmark, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Bookmark), args.Error(1)
}

func (m *mockBookmarkStore) GetByID(ctx context.Context, id uint64) (model.Bookmark, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Bookmark), args.Error(1)
}

func (m *mockBookmarkStore) GetByIDAndOwner(ctx context.Context, id, userID uint64) (model.Bookmark, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(model.Bookmark), args.Error(1)
}

func (m *mockBookmarkStore) Update(ctx context.Context, id, userID uint64, upd model.BookmarkUpdate) (model.Bookmark, error) {
	args := m.Called(ctx, id, userID, upd)
	return args.Get(0).(model.Bookmark), args.Error(1)
}

func (m *mockBookmarkStore) Delete(ctx context.Context, id, userID uint64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// recordingEvents captures published events so tests can assert on
// them without a broker.
type recordingEvents struct {
	created []model.Bookmark
	deleted []model.Bookmark
}

func (r *recordingEvents) BookmarkCreated(_ context.Context, b model.Bookmark) {
	r.created = append(r.created, b)
}

func (r *recordingEvents) BookmarkDeleted(_ context.Context, b model.Bookmark) {
	r.deleted = append(r.deleted, b)
}

// newTestContext builds an Echo context for a JSON request, optionally
// authenticated as the given user (nil means anonymous, as if the
// guard never ran).
func newTestContext(t *testing.T, method, target string, body []byte, as *model.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if as != nil {
		c.Set(middleware.UserKey, *as)
	}
	return c, rec
}

// pathContext is newTestContext plus a bound :id path parameter.
func pathContext(t *testing.T, method, target, id string, body []byte, as *model.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newTestContext(t, method, target, body, as)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func strptr(s string) *string { return &s }

func assertNoHashField(t *testing.T, body []byte) {
	t.Helper()
	if bytes.Contains(body, []byte("password")) || bytes.Contains(body, []byte("hash")) {
		t.Fatalf("response leaks password hash: %s", body)
	}
}
