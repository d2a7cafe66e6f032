package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestNotesEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.store, "notes-user@test.com", "password123")
	_, otherToken := createTestUser(t, env.store, "notes-other@test.com", "password123")

	var noteID string

	t.Run("POST /api/notes/ requires content", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/notes/", map[string]any{
			"content": "   ",
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertError(t, body, "Content is required")
	})

	t.Run("POST /api/notes/ creates a personal note", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/notes/", map[string]any{
			"content": "remember the milk",
			"groupId": "personal",
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusCreated)
		note := body["note"].(map[string]any)
		noteID = note["id"].(string)
		if note["content"] != "remember the milk" {
			t.Fatalf("expected content round-trip, got %v", note["content"])
		}
	})

	t.Run("GET /api/notes/?groupId=personal returns the note", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/notes/?groupId=personal", nil, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		notes := body["notes"].([]any)
		if len(notes) != 1 {
			t.Fatalf("expected one personal note, got %d", len(notes))
		}
	})

	t.Run("GET /api/notes/ without scope returns an empty list", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/notes/", nil, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		notes := body["notes"].([]any)
		if len(notes) != 0 {
			t.Fatalf("expected empty dashboard note list, got %d", len(notes))
		}
	})

	t.Run("PATCH /api/notes/:id by a stranger is denied", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/notes/"+noteID, map[string]any{
			"content": "hijacked",
		}, authHeaders(otherToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertError(t, body, "Note not found or access denied")
	})

	t.Run("PATCH /api/notes/:id replaces the content", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/notes/"+noteID, map[string]any{
			"content": "remember the bread",
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		note := body["note"].(map[string]any)
		if note["content"] != "remember the bread" {
			t.Fatalf("expected updated content, got %v", note["content"])
		}
	})

	t.Run("PATCH /api/notes/:id unknown id is denied", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPatch, "/api/notes/"+uuid.NewString(), map[string]any{
			"content": "ghost",
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertError(t, body, "Note not found or access denied")
	})

	t.Run("DELETE /api/notes/:id removes the note", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, "/api/notes/"+noteID, nil, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		if body["success"] != true {
			t.Fatalf("expected success=true, got %+v", body)
		}

		listResp := performRequest(t, env.app, http.MethodGet, "/api/notes/?groupId=personal", nil, authHeaders(token))
		listBody := decodeJSONMap(t, listResp)
		if notes := listBody["notes"].([]any); len(notes) != 0 {
			t.Fatalf("expected note gone after delete, got %d", len(notes))
		}
	})
}
