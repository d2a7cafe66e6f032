package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/groupdesk/backend/internal/middleware"
	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/services"
	"github.com/groupdesk/backend/internal/store"
	"github.com/groupdesk/backend/pkg/utils"
)

type MessagesHandler struct {
	Store  store.Store
	Access *services.AccessService
}

func NewMessagesHandler(s store.Store, access *services.AccessService) *MessagesHandler {
	return &MessagesHandler{Store: s, Access: access}
}

func (h *MessagesHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid group id")
	}

	if err := h.Access.RequireMember(c.UserContext(), currentUser.ID, groupID); err != nil {
		if err == services.ErrForbidden {
			return utils.Error(c, fiber.StatusForbidden, "Not a member of this group")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	messages, err := h.Store.ListMessages(c.UserContext(), groupID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"messages": messages})
}

type createMessageRequest struct {
	Content string `json:"content"`
}

func (h *MessagesHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid group id")
	}

	var req createMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Content is required")
	}

	if err := h.Access.RequireMember(c.UserContext(), currentUser.ID, groupID); err != nil {
		if err == services.ErrForbidden {
			return utils.Error(c, fiber.StatusForbidden, "Not a member of this group")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	message := models.Message{
		GroupID: groupID,
		UserID:  currentUser.ID,
		Content: req.Content,
	}
	if err := h.Store.CreateMessage(c.UserContext(), &message); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to send message")
	}
	message.UserName = currentUser.DisplayName()

	return utils.JSON(c, fiber.StatusCreated, fiber.Map{"message": message})
}
