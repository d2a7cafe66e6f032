package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/groupdesk/backend/internal/middleware"
	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/services"
	"github.com/groupdesk/backend/internal/store"
	"github.com/groupdesk/backend/internal/store/postgres"
	"github.com/groupdesk/backend/pkg/logger"
	"github.com/groupdesk/backend/pkg/utils"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	store store.Store
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		logger.Init()
		utils.ConfigureJWT("test-secret", 24)
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	recordStore, err := postgres.New(db)
	if err != nil {
		t.Fatalf("failed initializing record store: %v", err)
	}

	accessService := services.NewAccessService(recordStore)

	authHandler := NewAuthHandler(recordStore)
	usersHandler := NewUsersHandler(recordStore, nil)
	groupsHandler := NewGroupsHandler(recordStore, accessService)
	todosHandler := NewTodosHandler(recordStore, accessService)
	notesHandler := NewNotesHandler(recordStore, accessService)
	messagesHandler := NewMessagesHandler(recordStore, accessService)
	authMiddleware := middleware.NewAuthMiddleware(recordStore)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

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

	return &testEnv{app: app, db: db, store: recordStore}
}

func createTestUser(t *testing.T, s store.Store, email, password string) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed hashing password: %v", err)
	}

	user := &models.User{Email: email}
	if err := s.CreateUser(context.Background(), user, hash); err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating auth token: %v", err)
	}

	return user, token
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}
