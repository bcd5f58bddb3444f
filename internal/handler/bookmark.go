package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bookmark-keeper/internal/middleware"
	"github.com/iliyamo/bookmark-keeper/internal/model"
	"github.com/iliyamo/bookmark-keeper/internal/repository"
)

// BookmarkHandler serves CRUD over the authenticated user's bookmarks.
// Every operation is scoped to the owner: other users' bookmarks are
// invisible on reads and untouchable on writes.
type BookmarkHandler struct {
	Bookmarks BookmarkStore
	Events    EventPublisher
}

func NewBookmarkHandler(b BookmarkStore, ev EventPublisher) *BookmarkHandler {
	return &BookmarkHandler{Bookmarks: b, Events: ev}
}

type createBookmarkReq struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Link        string  `json:"link"`
}
type updateBookmarkReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
}

// Create handles POST /bookmark.
func (h *BookmarkHandler) Create(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookmarkReq
	if err := bindStrict(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if !validLink(req.Link) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "link must be a valid URL"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookmarks.Create(ctx, u.ID, req.Title, req.Description, req.Link)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create bookmark failed"})
	}
	h.Events.BookmarkCreated(ctx, b)
	return c.JSON(http.StatusCreated, b)
}

// List handles GET /bookmark and returns every bookmark the caller
// owns, oldest first. Owning none yields an empty array.
func (h *BookmarkHandler) List(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookmarks.ListByOwner(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetOne handles GET /bookmark/:id. The lookup is owner-scoped, so a
// foreign bookmark answers 404 exactly like a missing one and the
// endpoint leaks nothing about other users' rows.
func (h *BookmarkHandler) GetOne(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookmarks.GetByIDAndOwner(ctx, id, u.ID)
	if err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bookmark not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, b)
}

// Update handles PATCH /bookmark/:id. The bookmark is fetched by id
// alone and absence and foreign ownership collapse into one 403, so
// the mutation paths never confirm whether a given id exists.
func (h *BookmarkHandler) Update(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateBookmarkReq
	if err := bindStrict(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
		}
		req.Title = &t
	}
	if req.Link != nil && !validLink(*req.Link) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "link must be a valid URL"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.checkOwnership(ctx, id, u.ID); err != nil {
		return h.ownershipFailure(c, err)
	}
	b, err := h.Bookmarks.Update(ctx, id, u.ID, model.BookmarkUpdate{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		// Lost a race with a concurrent delete: same collapsed outcome.
		return h.ownershipFailure(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Delete handles DELETE /bookmark/:id with the same collapsed 403 as
// Update. Deletion is immediate; there is no soft delete.
func (h *BookmarkHandler) Delete(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.checkOwnership(ctx, id, u.ID)
	if err != nil {
		return h.ownershipFailure(c, err)
	}
	if err := h.Bookmarks.Delete(ctx, id, u.ID); err != nil {
		return h.ownershipFailure(c, err)
	}
	h.Events.BookmarkDeleted(ctx, b)
	return c.NoContent(http.StatusNoContent)
}

// checkOwnership fetches the bookmark by id alone and verifies the
// owner. It returns ErrBookmarkNotFound for both a missing row and a
// foreign one; ownershipFailure maps that to the collapsed 403.
func (h *BookmarkHandler) checkOwnership(ctx context.Context, id, userID uint64) (model.Bookmark, error) {
	b, err := h.Bookmarks.GetByID(ctx, id)
	if err != nil {
		return model.Bookmark{}, err
	}
	if b.UserID != userID {
		return model.Bookmark{}, repository.ErrBookmarkNotFound
	}
	return b, nil
}

func (h *BookmarkHandler) ownershipFailure(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrBookmarkNotFound) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access to resource denied"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
}
