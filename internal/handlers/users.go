package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/groupdesk/backend/internal/middleware"
	"github.com/groupdesk/backend/internal/storage"
	"github.com/groupdesk/backend/internal/store"
	"github.com/groupdesk/backend/pkg/logger"
	"github.com/groupdesk/backend/pkg/utils"
)

type UsersHandler struct {
	Store   store.Store
	Avatars *storage.AvatarStore
}

func NewUsersHandler(s store.Store, avatars *storage.AvatarStore) *UsersHandler {
	return &UsersHandler{Store: s, Avatars: avatars}
}

func (h *UsersHandler) Search(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	query := strings.TrimSpace(c.Query("email"))
	if query == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Email query is required")
	}

	users, err := h.Store.SearchUsers(c.UserContext(), query, store.SearchLimit)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to search users")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"users": users})
}

var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (h *UsersHandler) UploadAvatar(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if h.Avatars == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "Avatar storage is not configured")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Avatar file is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedAvatarTypes[contentType] {
		return utils.Error(c, fiber.StatusBadRequest, "Unsupported image type")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to upload avatar")
	}
	defer file.Close()

	objectName := fmt.Sprintf("avatars/%s%s", currentUser.ID.String(), filepath.Ext(fileHeader.Filename))
	if err := h.Avatars.Upload(c.UserContext(), objectName, file, fileHeader.Size, contentType); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to upload avatar")
	}

	imageURL := h.Avatars.PublicURL(objectName)
	if err := h.Store.UpdateUserImage(c.UserContext(), currentUser.ID, imageURL); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to upload avatar")
	}

	user, err := h.Store.UserByID(c.UserContext(), currentUser.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to upload avatar")
	}

	logger.InfoWithUser(currentUser.ID.String(), "avatar_updated", map[string]interface{}{
		"object_name": objectName,
	})

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"user": user})
}
