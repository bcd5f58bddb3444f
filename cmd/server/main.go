package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/bookmark-keeper/internal/config"
	"github.com/iliyamo/bookmark-keeper/internal/database"
	"github.com/iliyamo/bookmark-keeper/internal/handler"
	"github.com/iliyamo/bookmark-keeper/internal/queue"
	"github.com/iliyamo/bookmark-keeper/internal/repository"
	"github.com/iliyamo/bookmark-keeper/internal/router"
)

func main() {
	// A local .env is a development convenience; in deployments the
	// variables come from the environment itself.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBName); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// Explicit wiring: gateway once, handlers on top, routes last.
	users := repository.NewUserRepo(db)
	bookmarks := repository.NewBookmarkRepo(db)
	events := queue.NewPublisher(cfg.AMQPURL)

	authH := handler.NewAuthHandler(cfg, users)
	userH := handler.NewUserHandler(users)
	bookmarkH := handler.NewBookmarkHandler(bookmarks, events)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	router.Register(e, authH, userH, bookmarkH, cfg.JWTSecret, users)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
