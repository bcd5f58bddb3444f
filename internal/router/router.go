package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bookmark-keeper/internal/handler"
	"github.com/iliyamo/bookmark-keeper/internal/middleware"
)

// Register wires every route of the service onto the provided Echo
// instance. Signup and login are public; everything under /users and
// /bookmark sits behind the bearer guard, which validates the token
// and resolves it to a live user before any handler runs.
func Register(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, b *handler.BookmarkHandler, jwtSecret string, users middleware.UserResolver) {
	e.GET("/healthz", handler.Health)

	auth := e.Group("/auth")
	auth.POST("/signup", a.Signup)
	auth.POST("/login", a.Login)

	guard := middleware.JWTAuth(jwtSecret, users)

	ug := e.Group("/users", guard)
	ug.GET("/me", u.Me)
	ug.PATCH("", u.EditUser)

	bg := e.Group("/bookmark", guard)
	bg.POST("", b.Create)
	bg.GET("", b.List)
	bg.GET("/:id", b.GetOne)
	bg.PATCH("/:id", b.Update)
	bg.DELETE("/:id", b.Delete)
}
