package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bookmark-keeper/internal/middleware"
	"github.com/iliyamo/bookmark-keeper/internal/model"
	"github.com/iliyamo/bookmark-keeper/internal/repository"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	Users UserStore
}

func NewUserHandler(u UserStore) *UserHandler {
	return &UserHandler{Users: u}
}

type editUserReq struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Me handles GET /users/me. The guard already resolved the user; no
// extra lookup is performed.
func (h *UserHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, u)
}

// EditUser handles PATCH /users: a partial update of the caller's own
// profile. Only provided fields are touched.
func (h *UserHandler) EditUser(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req editUserReq
	if err := bindStrict(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validEmail(e) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
		}
		req.Email = &e
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Users.UpdateProfile(ctx, u.ID, model.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		case errors.Is(err, repository.ErrUserNotFound):
			// The account vanished between the guard and the write.
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, updated)
}
