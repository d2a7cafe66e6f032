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

type NotesHandler struct {
	Store  store.Store
	Access *services.AccessService
}

func NewNotesHandler(s store.Store, access *services.AccessService) *NotesHandler {
	return &NotesHandler{Store: s, Access: access}
}

func (h *NotesHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	param, err := parseScopeParam(c.Query("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid group id")
	}

	if param.checkMember {
		if err := h.Access.RequireMember(c.UserContext(), currentUser.ID, param.groupID); err != nil {
			if err == services.ErrForbidden {
				return utils.Error(c, fiber.StatusForbidden, "Not a member of this group")
			}
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch notes")
		}
	}

	notes, err := h.Store.ListNotes(c.UserContext(), currentUser.ID, param.scope)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch notes")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"notes": notes})
}

type createNoteRequest struct {
	Content string `json:"content"`
	GroupID string `json:"groupId"`
}

func (h *NotesHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req createNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if strings.TrimSpace(req.Content) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Content is required")
	}

	param, err := parseScopeParam(req.GroupID)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid group id")
	}
	if param.checkMember {
		if err := h.Access.RequireMember(c.UserContext(), currentUser.ID, param.groupID); err != nil {
			if err == services.ErrForbidden {
				return utils.Error(c, fiber.StatusForbidden, "Not a member of this group")
			}
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to create note")
		}
	}

	note := models.Note{
		CreatedByID: currentUser.ID,
		Content:     req.Content,
	}
	if param.checkMember {
		groupID := param.groupID
		note.GroupID = &groupID
	}

	if err := h.Store.CreateNote(c.UserContext(), &note); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create note")
	}

	return utils.JSON(c, fiber.StatusCreated, fiber.Map{"note": note})
}

type updateNoteRequest struct {
	Content string `json:"content"`
}

func (h *NotesHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	noteID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid note id")
	}

	var req updateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Content) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Content is required")
	}

	if err := h.Access.RequireNoteAccess(c.UserContext(), currentUser.ID, noteID); err != nil {
		if err == services.ErrForbidden {
			return utils.Error(c, fiber.StatusForbidden, "Note not found or access denied")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update note")
	}

	note, err := h.Store.UpdateNote(c.UserContext(), noteID, req.Content)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update note")
	}
	if note == nil {
		return utils.Error(c, fiber.StatusForbidden, "Note not found or access denied")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"note": note})
}

func (h *NotesHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	noteID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid note id")
	}

	if err := h.Access.RequireNoteAccess(c.UserContext(), currentUser.ID, noteID); err != nil {
		if err == services.ErrForbidden {
			return utils.Error(c, fiber.StatusForbidden, "Note not found or access denied")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete note")
	}

	if err := h.Store.DeleteNote(c.UserContext(), noteID); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete note")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"success": true})
}
