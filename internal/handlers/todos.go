package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/middleware"
	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/services"
	"github.com/groupdesk/backend/internal/store"
	"github.com/groupdesk/backend/pkg/utils"
)

type TodosHandler struct {
	Store  store.Store
	Access *services.AccessService
}

func NewTodosHandler(s store.Store, access *services.AccessService) *TodosHandler {
	return &TodosHandler{Store: s, Access: access}
}

// scopeParam is the parsed groupId query/body value: absent means the
// dashboard union, "personal" means the caller's ungrouped records, and a
// group id requires a membership check before use.
type scopeParam struct {
	scope       store.Scope
	groupID     uuid.UUID
	checkMember bool
}

func parseScopeParam(value string) (scopeParam, error) {
	value = strings.TrimSpace(value)
	switch value {
	case "":
		return scopeParam{scope: store.Scope{}}, nil
	case "personal":
		return scopeParam{scope: store.PersonalScope()}, nil
	default:
		groupID, err := parseUUID(value)
		if err != nil {
			return scopeParam{}, err
		}
		return scopeParam{scope: store.GroupScope(groupID), groupID: groupID, checkMember: true}, nil
	}
}

func (h *TodosHandler) List(c *fiber.Ctx) error {
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
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch todos")
		}
	}

	todos, err := h.Store.ListTodos(c.UserContext(), currentUser.ID, param.scope)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch todos")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"todos": todos})
}

type createTodoRequest struct {
	Title      string   `json:"title"`
	GroupID    string   `json:"groupId"`
	DueDate    *string  `json:"dueDate"`
	AssignedTo []string `json:"assignedTo"`
}

func (h *TodosHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req createTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Title is required")
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
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to create todo")
		}
	}

	todo := models.Todo{
		CreatedByID: currentUser.ID,
		Title:       req.Title,
		AssignedTo:  []uuid.UUID{currentUser.ID},
	}
	if param.checkMember {
		groupID := param.groupID
		todo.GroupID = &groupID
	}

	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		due, err := parseDueDate(strings.TrimSpace(*req.DueDate))
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "Invalid due date")
		}
		todo.DueDate = &due
	}

	if len(req.AssignedTo) > 0 {
		assignees, err := parseUUIDList(req.AssignedTo)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "Invalid assignee id")
		}
		todo.AssignedTo = assignees
	}

	if err := h.Store.CreateTodo(c.UserContext(), &todo); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create todo")
	}

	return utils.JSON(c, fiber.StatusCreated, fiber.Map{"todo": todo})
}

// optionalDate distinguishes an absent dueDate from an explicit null, so a
// patch can clear the field.
type optionalDate struct {
	set   bool
	value *time.Time
}

func (o *optionalDate) UnmarshalJSON(data []byte) error {
	o.set = true
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	due, err := parseDueDate(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	o.value = &due
	return nil
}

type updateTodoRequest struct {
	Completed  *bool        `json:"completed"`
	Title      *string      `json:"title"`
	DueDate    optionalDate `json:"dueDate"`
	AssignedTo *[]string    `json:"assignedTo"`
}

func (h *TodosHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	todoID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid todo id")
	}

	var req updateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	// Access is settled before the patch is validated, so an inaccessible
	// todo answers 403 no matter what the body contains.
	if err := h.Access.RequireTodoAccess(c.UserContext(), currentUser.ID, todoID); err != nil {
		if err == services.ErrForbidden {
			return utils.Error(c, fiber.StatusForbidden, "Todo not found or access denied")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update todo")
	}

	patch := store.TodoPatch{Completed: req.Completed}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != "" {
			patch.Title = &title
		}
	}
	if req.DueDate.set {
		patch.DueDate = req.DueDate.value
		patch.DueDateSet = true
	}
	if req.AssignedTo != nil {
		assignees, err := parseUUIDList(*req.AssignedTo)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "Invalid assignee id")
		}
		patch.AssignedTo = assignees
		patch.AssignedToSet = true
	}

	if patch.Empty() {
		return utils.Error(c, fiber.StatusBadRequest, "No valid fields to update")
	}

	todo, err := h.Store.UpdateTodo(c.UserContext(), todoID, patch)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update todo")
	}
	if todo == nil {
		return utils.Error(c, fiber.StatusForbidden, "Todo not found or access denied")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"todo": todo})
}

func (h *TodosHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	todoID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid todo id")
	}

	if err := h.Access.RequireTodoAccess(c.UserContext(), currentUser.ID, todoID); err != nil {
		if err == services.ErrForbidden {
			return utils.Error(c, fiber.StatusForbidden, "Todo not found or access denied")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete todo")
	}

	if err := h.Store.DeleteTodo(c.UserContext(), todoID); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete todo")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"success": true})
}

func parseUUIDList(values []string) ([]uuid.UUID, error) {
	parsed := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := parseUUID(v)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, id)
	}
	return parsed, nil
}
