package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/groupdesk/backend/internal/config"
	"github.com/groupdesk/backend/internal/handlers"
	"github.com/groupdesk/backend/internal/middleware"
	"github.com/groupdesk/backend/internal/services"
	"github.com/groupdesk/backend/internal/storage"
	"github.com/groupdesk/backend/internal/store"
	"github.com/groupdesk/backend/internal/store/jsonfile"
	"github.com/groupdesk/backend/internal/store/postgres"
	"github.com/groupdesk/backend/pkg/logger"
	"github.com/groupdesk/backend/pkg/utils"
)

// openStore picks the record-store backend: Postgres when DATABASE_URL is
// set, otherwise a local JSON file.
func openStore(cfg config.DBConfig) (store.Store, string, error) {
	if cfg.URL != "" {
		s, err := postgres.Connect(cfg.URL)
		return s, "postgres", err
	}
	s, err := jsonfile.Open(cfg.FilePath)
	return s, "jsonfile", err
}

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, backend, err := openStore(cfg.DB)
	if err != nil {
		log.Fatalf("store initialization failed: %v", err)
	}
	defer db.Close()

	var avatars *storage.AvatarStore
	if cfg.MinIO.Endpoint != "" {
		avatars, err = storage.NewAvatarStore(cfg.MinIO)
		if err != nil {
			log.Fatalf("minio initialization failed: %v", err)
		}
		if err := avatars.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("failed ensuring minio bucket: %v", err)
		}
	}

	accessService := services.NewAccessService(db)

	authHandler := handlers.NewAuthHandler(db)
	usersHandler := handlers.NewUsersHandler(db, avatars)
	groupsHandler := handlers.NewGroupsHandler(db, accessService)
	todosHandler := handlers.NewTodosHandler(db, accessService)
	notesHandler := handlers.NewNotesHandler(db, accessService)
	messagesHandler := handlers.NewMessagesHandler(db, accessService)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())
	app.Use(middleware.Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", middleware.MetricsHandler())

	api := app.Group("/api")

	api.Get("/config", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"chatPollSeconds": cfg.Chat.PollSeconds})
	})

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	api.Get("/users/search", authMiddleware.RequireAuth, usersHandler.Search)
	api.Post("/users/avatar", authMiddleware.RequireAuth, usersHandler.UploadAvatar)

	groupRoutes := api.Group("/groups", authMiddleware.RequireAuth)
	groupRoutes.Get("/", groupsHandler.List)
	groupRoutes.Post("/", groupsHandler.Create)
	groupRoutes.Get("/:id/members", groupsHandler.ListMembers)
	groupRoutes.Post("/:id/members", groupsHandler.AddMember)
	groupRoutes.Get("/:id/messages", messagesHandler.List)
	groupRoutes.Post("/:id/messages", messagesHandler.Create)

	todoRoutes := api.Group("/todos", authMiddleware.RequireAuth)
	todoRoutes.Get("/", todosHandler.List)
	todoRoutes.Post("/", todosHandler.Create)
	todoRoutes.Patch("/:id", todosHandler.Update)
	todoRoutes.Delete("/:id", todosHandler.Delete)

	noteRoutes := api.Group("/notes", authMiddleware.RequireAuth)
	noteRoutes.Get("/", notesHandler.List)
	noteRoutes.Post("/", notesHandler.Create)
	noteRoutes.Patch("/:id", notesHandler.Update)
	noteRoutes.Delete("/:id", notesHandler.Delete)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
		"backend": backend,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
