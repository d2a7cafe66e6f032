package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/groupdesk/backend/internal/middleware"
	"github.com/groupdesk/backend/internal/services"
	"github.com/groupdesk/backend/internal/store"
	"github.com/groupdesk/backend/pkg/logger"
	"github.com/groupdesk/backend/pkg/utils"
)

type GroupsHandler struct {
	Store  store.Store
	Access *services.AccessService
}

func NewGroupsHandler(s store.Store, access *services.AccessService) *GroupsHandler {
	return &GroupsHandler{Store: s, Access: access}
}

func (h *GroupsHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groups, err := h.Store.MemberGroups(c.UserContext(), currentUser.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch groups")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"groups": groups})
}

type createGroupRequest struct {
	Name string `json:"name"`
}

func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Group name is required")
	}

	group, err := h.Store.CreateGroup(c.UserContext(), req.Name, currentUser.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create group")
	}

	logger.InfoWithUser(currentUser.ID.String(), "group_created", map[string]interface{}{
		"group_id":   group.ID.String(),
		"group_name": group.Name,
	})

	return utils.JSON(c, fiber.StatusCreated, fiber.Map{"group": group})
}

func (h *GroupsHandler) ListMembers(c *fiber.Ctx) error {
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
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch members")
	}

	members, err := h.Store.ListMembers(c.UserContext(), groupID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch members")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"members": members})
}

type addMemberRequest struct {
	UserIDToAdd string `json:"userIdToAdd"`
}

func (h *GroupsHandler) AddMember(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid group id")
	}

	var req addMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.UserIDToAdd) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "User ID is required")
	}

	userIDToAdd, err := parseUUID(req.UserIDToAdd)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	// Any current member may add another user; the guard runs before the
	// write so a rejected caller never mutates membership.
	if err := h.Access.RequireMember(c.UserContext(), currentUser.ID, groupID); err != nil {
		if err == services.ErrForbidden {
			return utils.Error(c, fiber.StatusForbidden, "Not a member of this group")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to add member")
	}

	if err := h.Store.AddMember(c.UserContext(), groupID, userIDToAdd); err != nil {
		if err == store.ErrNotFound {
			return utils.Error(c, fiber.StatusBadRequest, "User not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to add member")
	}

	logger.InfoWithUser(currentUser.ID.String(), "member_added", map[string]interface{}{
		"group_id":      groupID.String(),
		"added_user_id": userIDToAdd.String(),
	})

	return utils.JSON(c, fiber.StatusCreated, fiber.Map{"success": true})
}
