package jsonfile

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
)

func (s *Store) ListTodos(ctx context.Context, userID uuid.UUID, scope store.Scope) ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	todos := []models.Todo{}

	switch {
	case scope.Personal:
		for _, t := range doc.Todos {
			if t.GroupID == nil && t.CreatedByID == userID {
				todos = append(todos, t)
			}
		}

	case scope.GroupID != nil:
		for _, t := range doc.Todos {
			if t.GroupID != nil && *t.GroupID == *scope.GroupID {
				todos = append(todos, t)
			}
		}

	default:
		memberOf := map[uuid.UUID]bool{}
		for _, m := range doc.GroupMembers {
			if m.UserID == userID {
				memberOf[m.GroupID] = true
			}
		}
		names := map[uuid.UUID]string{}
		for _, g := range doc.Groups {
			names[g.ID] = g.Name
		}

		for _, t := range doc.Todos {
			grouped := t.GroupID != nil && memberOf[*t.GroupID]
			personal := t.GroupID == nil && t.CreatedByID == userID
			if !grouped && !personal {
				continue
			}
			if t.GroupID != nil {
				if name, ok := names[*t.GroupID]; ok {
					n := name
					t.GroupName = &n
				}
			}
			todos = append(todos, t)
		}
	}

	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].CreatedAt.Before(todos[j].CreatedAt)
	})
	return todos, nil
}

func (s *Store) CreateTodo(ctx context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	stamp(&todo.BaseModel)
	doc.Todos = append(doc.Todos, *todo)
	return s.save(doc)
}

func (s *Store) UpdateTodo(ctx context.Context, id uuid.UUID, patch store.TodoPatch) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range doc.Todos {
		if doc.Todos[i].ID != id {
			continue
		}
		t := &doc.Todos[i]
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		if patch.DueDateSet {
			t.DueDate = patch.DueDate
		}
		if patch.AssignedToSet {
			t.AssignedTo = patch.AssignedTo
		}
		stamp(&t.BaseModel)
		if err := s.save(doc); err != nil {
			return nil, err
		}
		updated := *t
		return &updated, nil
	}
	return nil, nil
}

func (s *Store) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	kept := doc.Todos[:0]
	removed := false
	for _, t := range doc.Todos {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	doc.Todos = kept

	if !removed {
		// Idempotent: deleting a missing todo is still success.
		return nil
	}
	return s.save(doc)
}

func (s *Store) TodoAccess(ctx context.Context, userID, todoID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}

	for _, t := range doc.Todos {
		if t.ID != todoID {
			continue
		}
		if t.GroupID == nil {
			return t.CreatedByID == userID, nil
		}
		return isMember(doc, *t.GroupID, userID), nil
	}
	return false, nil
}
