package handlers

import (
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/groupdesk/backend/internal/middleware"
	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
	"github.com/groupdesk/backend/pkg/logger"
	"github.com/groupdesk/backend/pkg/utils"
)

type AuthHandler struct {
	Store store.Store
}

func NewAuthHandler(s store.Store) *AuthHandler {
	return &AuthHandler{Store: s}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid email")
	}
	if len(req.Password) < 8 {
		return utils.Error(c, fiber.StatusBadRequest, "Password must be at least 8 characters")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	user := models.User{Email: req.Email}
	if req.Name != "" {
		user.Name = &req.Name
	}

	if err := h.Store.CreateUser(c.UserContext(), &user, passwordHash); err != nil {
		if err == store.ErrEmailTaken {
			return utils.Error(c, fiber.StatusConflict, "Email already registered")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	logger.Info("user_registered", map[string]interface{}{
		"user_id": user.ID.String(),
		"email":   user.Email,
	})

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	return utils.JSON(c, fiber.StatusCreated, fiber.Map{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email == "" || req.Password == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Email and password are required")
	}

	user, err := h.Store.UserByEmail(c.UserContext(), req.Email)
	if err != nil {
		logger.Warn("login_failed_user_not_found", map[string]interface{}{
			"email": req.Email,
			"ip":    c.IP(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	hash, err := h.Store.PasswordHash(c.UserContext(), user.ID)
	if err != nil || !utils.CheckPassword(req.Password, hash) {
		logger.Warn("login_failed_invalid_password", map[string]interface{}{
			"user_id": user.ID.String(),
			"ip":      c.IP(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	logger.InfoWithUser(user.ID.String(), "user_login", map[string]interface{}{
		"email": user.Email,
		"ip":    c.IP(),
	})

	token, err := utils.GenerateToken(user)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to sign in")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"token": token, "user": user})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return utils.JSON(c, fiber.StatusOK, fiber.Map{"user": currentUser})
}
