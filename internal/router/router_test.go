package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bookmark-keeper/internal/config"
	"github.com/iliyamo/bookmark-keeper/internal/handler"
	"github.com/iliyamo/bookmark-keeper/internal/model"
	"github.com/iliyamo/bookmark-keeper/internal/repository"
	"github.com/iliyamo/bookmark-keeper/internal/utils"
)

const testSecret = "router-test-secret"

type memUsers struct {
	byID map[uint64]model.User
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) Create(context.Context, string, string, *string, *string) (model.User, error) {
	return model.User{}, repository.ErrEmailExists
}
func (m *memUsers) GetByEmail(context.Context, string) (model.User, error) {
	return model.User{}, repository.ErrUserNotFound
}
func (m *memUsers) UpdateProfile(context.Context, uint64, model.UserUpdate) (model.User, error) {
	return model.User{}, repository.ErrUserNotFound
}

type memBookmarks struct{}

func (memBookmarks) Create(context.Context, uint64, string, *string, string) (model.Bookmark, error) {
	return model.Bookmark{}, nil
}
func (memBookmarks) ListByOwner(context.Context, uint64) ([]model.Bookmark, error) {
	return []model.Bookmark{}, nil
}
func (memBookmarks) GetByID(context.Context, uint64) (model.Bookmark, error) {
	return model.Bookmark{}, repository.ErrBookmarkNotFound
}
func (memBookmarks) GetByIDAndOwner(context.Context, uint64, uint64) (model.Bookmark, error) {
	return model.Bookmark{}, repository.ErrBookmarkNotFound
}
func (memBookmarks) Update(context.Context, uint64, uint64, model.BookmarkUpdate) (model.Bookmark, error) {
	return model.Bookmark{}, repository.ErrBookmarkNotFound
}
func (memBookmarks) Delete(context.Context, uint64, uint64) error {
	return repository.ErrBookmarkNotFound
}

type nopEvents struct{}

func (nopEvents) BookmarkCreated(context.Context, model.Bookmark) {}
func (nopEvents) BookmarkDeleted(context.Context, model.Bookmark) {}

func newTestServer(t *testing.T, users *memUsers) *echo.Echo {
	t.Helper()
	cfg := config.Config{JWTSecret: testSecret, AccessTTLMin: 15, BcryptCost: 4}
	e := echo.New()
	Register(e,
		handler.NewAuthHandler(cfg, users),
		handler.NewUserHandler(users),
		handler.NewBookmarkHandler(memBookmarks{}, nopEvents{}),
		cfg.JWTSecret, users)
	return e
}

func TestHealthzIsPublic(t *testing.T) {
	e := newTestServer(t, &memUsers{byID: map[uint64]model.User{}})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	e := newTestServer(t, &memUsers{byID: map[uint64]model.User{}})
	routes := []struct{ method, path string }{
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users"},
		{http.MethodPost, "/bookmark"},
		{http.MethodGet, "/bookmark"},
		{http.MethodGet, "/bookmark/1"},
		{http.MethodPatch, "/bookmark/1"},
		{http.MethodDelete, "/bookmark/1"},
	}
	for _, r := range routes {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(r.method, r.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", r.method, r.path)
	}
}

func TestGuardedRequestReachesHandler(t *testing.T) {
	me := model.User{ID: 1, Email: "me@example.com", PasswordHash: "$2a$04$x"}
	e := newTestServer(t, &memUsers{byID: map[uint64]model.User{1: me}})
	tok, err := utils.NewAccessToken(testSecret, me.ID, 15)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "me@example.com")
	assert.NotContains(t, rec.Body.String(), "$2a$")

	// The same token works on the bookmark group.
	req = httptest.NewRequest(http.MethodGet, "/bookmark", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
