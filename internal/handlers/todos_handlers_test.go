package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/models"
)

func TestTodosEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.store, "todos-user@test.com", "password123")

	var todoID string

	t.Run("POST /api/todos/ requires a title", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/todos/", map[string]any{
			"title": "  ",
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertError(t, body, "Title is required")
	})

	t.Run("POST /api/todos/ creates a personal todo", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/todos/", map[string]any{
			"title":   "Water the plants",
			"groupId": "personal",
			"dueDate": "2026-09-15",
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusCreated)
		todo := body["todo"].(map[string]any)
		todoID = todo["id"].(string)
		if todo["completed"] != false {
			t.Fatalf("expected new todo to be open, got %v", todo["completed"])
		}
		if todo["groupID"] != nil {
			t.Fatalf("expected personal todo to have no group, got %v", todo["groupID"])
		}
		assignees := todo["assignedTo"].([]any)
		if len(assignees) != 1 {
			t.Fatalf("expected creator as default assignee, got %v", assignees)
		}
	})

	t.Run("GET /api/todos/?groupId=personal returns the todo", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/todos/?groupId=personal", nil, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		todos := body["todos"].([]any)
		if len(todos) != 1 {
			t.Fatalf("expected one personal todo, got %d", len(todos))
		}
	})

	t.Run("PATCH /api/todos/:id rejects an empty patch", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/todos/"+todoID, map[string]any{}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertError(t, body, "No valid fields to update")
	})

	t.Run("PATCH /api/todos/:id merges only the provided fields", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/todos/"+todoID, map[string]any{
			"completed": true,
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		todo := body["todo"].(map[string]any)
		if todo["completed"] != true {
			t.Fatalf("expected completed=true, got %v", todo["completed"])
		}
		if todo["title"] != "Water the plants" {
			t.Fatalf("expected title untouched, got %v", todo["title"])
		}
		if todo["dueDate"] == nil {
			t.Fatalf("expected dueDate untouched, got nil")
		}
	})

	t.Run("PATCH /api/todos/:id clears dueDate on explicit null", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/todos/"+todoID, map[string]any{
			"dueDate": nil,
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		todo := body["todo"].(map[string]any)
		if todo["dueDate"] != nil {
			t.Fatalf("expected dueDate cleared, got %v", todo["dueDate"])
		}
	})

	t.Run("PATCH /api/todos/:id empty patch on unknown id is denied, not 400", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/todos/"+uuid.NewString(), map[string]any{}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertError(t, body, "Todo not found or access denied")
	})

	t.Run("PATCH /api/todos/:id unknown id is denied", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/todos/"+uuid.NewString(), map[string]any{
			"completed": true,
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertError(t, body, "Todo not found or access denied")
	})

	t.Run("DELETE /api/todos/:id succeeds twice", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp := performRequest(t, env.app, http.MethodDelete, "/api/todos/"+todoID, nil, authHeaders(token))
			if i == 0 {
				body := decodeJSONMap(t, resp)
				assertStatus(t, resp, http.StatusOK)
				if body["success"] != true {
					t.Fatalf("expected success=true, got %+v", body)
				}
			} else {
				// The second delete finds nothing; the guard folds it to 403.
				assertStatus(t, resp, http.StatusForbidden)
			}
		}
	})
}

func TestGroupTodoLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	_, tokenA := createTestUser(t, env.store, "lifecycle-a@test.com", "password123")
	userB, tokenB := createTestUser(t, env.store, "lifecycle-b@test.com", "password123")

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/", map[string]any{
		"name": "Eng",
	}, authHeaders(tokenA))
	body := decodeJSONMap(t, resp)
	assertStatus(t, resp, http.StatusCreated)
	groupID := body["group"].(map[string]any)["id"].(string)

	resp = performJSONRequest(t, env.app, http.MethodPost, "/api/todos/", map[string]any{
		"title":   "ship v1",
		"groupId": groupID,
	}, authHeaders(tokenA))
	body = decodeJSONMap(t, resp)
	assertStatus(t, resp, http.StatusCreated)
	todoID := body["todo"].(map[string]any)["id"].(string)

	t.Run("non-member cannot list group todos", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/todos/?groupId="+groupID, nil, authHeaders(tokenB))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertError(t, body, "Not a member of this group")
	})

	t.Run("added member sees and completes the todo", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/members", map[string]any{
			"userIdToAdd": userB.ID.String(),
		}, authHeaders(tokenA))
		assertStatus(t, resp, http.StatusCreated)

		resp = performRequest(t, env.app, http.MethodGet, "/api/todos/?groupId="+groupID, nil, authHeaders(tokenB))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		todos := body["todos"].([]any)
		if len(todos) != 1 {
			t.Fatalf("expected member to see one group todo, got %d", len(todos))
		}

		resp = performJSONRequest(t, env.app, http.MethodPatch, "/api/todos/"+todoID, map[string]any{
			"completed": true,
		}, authHeaders(tokenB))
		body = decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		if body["todo"].(map[string]any)["completed"] != true {
			t.Fatalf("expected member's patch to complete the todo")
		}
	})

	t.Run("dashboard listing annotates the group name", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/todos/", nil, authHeaders(tokenB))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		todos := body["todos"].([]any)
		if len(todos) != 1 {
			t.Fatalf("expected one todo on the dashboard, got %d", len(todos))
		}
		if todos[0].(map[string]any)["groupName"] != "Eng" {
			t.Fatalf("expected groupName annotation, got %v", todos[0])
		}
	})

	t.Run("revoked membership cuts off access immediately", func(t *testing.T) {
		err := env.db.Where("group_id = ? AND user_id = ?", groupID, userB.ID).
			Delete(&models.GroupMembership{}).Error
		if err != nil {
			t.Fatalf("failed revoking membership: %v", err)
		}

		resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/todos/"+todoID, map[string]any{
			"completed": false,
		}, authHeaders(tokenB))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertError(t, body, "Todo not found or access denied")
	})
}
