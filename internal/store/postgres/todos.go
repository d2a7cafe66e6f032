package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
)

func (s *Store) ListTodos(ctx context.Context, userID uuid.UUID, scope store.Scope) ([]models.Todo, error) {
	db := s.db.WithContext(ctx)

	if scope.Personal {
		var todos []models.Todo
		err := db.
			Where("group_id IS NULL AND created_by_id = ?", userID).
			Order("created_at ASC").
			Find(&todos).Error
		return todos, err
	}

	if scope.GroupID != nil {
		var todos []models.Todo
		err := db.
			Where("group_id = ?", *scope.GroupID).
			Order("created_at ASC").
			Find(&todos).Error
		return todos, err
	}

	// Dashboard: personal todos plus everything from the user's groups,
	// each annotated with the group's name.
	groups, err := s.MemberGroups(ctx, userID)
	if err != nil {
		return nil, err
	}

	groupIDs := make([]uuid.UUID, 0, len(groups))
	names := map[uuid.UUID]string{}
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
		names[g.ID] = g.Name
	}

	query := db.Where("group_id IS NULL AND created_by_id = ?", userID)
	if len(groupIDs) > 0 {
		query = db.Where("group_id IN ? OR (group_id IS NULL AND created_by_id = ?)", groupIDs, userID)
	}

	var todos []models.Todo
	if err := query.Order("created_at ASC").Find(&todos).Error; err != nil {
		return nil, err
	}

	for i := range todos {
		if todos[i].GroupID != nil {
			if name, ok := names[*todos[i].GroupID]; ok {
				n := name
				todos[i].GroupName = &n
			}
		}
	}
	return todos, nil
}

func (s *Store) CreateTodo(ctx context.Context, todo *models.Todo) error {
	return s.db.WithContext(ctx).Create(todo).Error
}

func (s *Store) UpdateTodo(ctx context.Context, id uuid.UUID, patch store.TodoPatch) (*models.Todo, error) {
	var todo models.Todo
	err := s.db.WithContext(ctx).First(&todo, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	applyTodoPatch(&todo, patch)

	if err := s.db.WithContext(ctx).Save(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func applyTodoPatch(todo *models.Todo, patch store.TodoPatch) {
	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	if patch.DueDateSet {
		todo.DueDate = patch.DueDate
	}
	if patch.AssignedToSet {
		todo.AssignedTo = patch.AssignedTo
	}
}

func (s *Store) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Todo{}, "id = ?", id).Error
}

func (s *Store) TodoAccess(ctx context.Context, userID, todoID uuid.UUID) (bool, error) {
	var todo models.Todo
	err := s.db.WithContext(ctx).First(&todo, "id = ?", todoID).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if todo.GroupID == nil {
		return todo.CreatedByID == userID, nil
	}
	return s.IsMember(ctx, *todo.GroupID, userID)
}
