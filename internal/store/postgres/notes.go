package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
)

func (s *Store) ListNotes(ctx context.Context, userID uuid.UUID, scope store.Scope) ([]models.Note, error) {
	db := s.db.WithContext(ctx)

	if scope.Personal {
		var notes []models.Note
		err := db.
			Where("group_id IS NULL AND created_by_id = ?", userID).
			Order("created_at ASC").
			Find(&notes).Error
		return notes, err
	}

	if scope.GroupID != nil {
		var notes []models.Note
		err := db.
			Where("group_id = ?", *scope.GroupID).
			Order("created_at ASC").
			Find(&notes).Error
		return notes, err
	}

	// No dashboard view for notes.
	return []models.Note{}, nil
}

func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	return s.db.WithContext(ctx).Create(note).Error
}

func (s *Store) UpdateNote(ctx context.Context, id uuid.UUID, content string) (*models.Note, error) {
	var note models.Note
	err := s.db.WithContext(ctx).First(&note, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	note.Content = content
	if err := s.db.WithContext(ctx).Save(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Store) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Note{}, "id = ?", id).Error
}

func (s *Store) NoteAccess(ctx context.Context, userID, noteID uuid.UUID) (bool, error) {
	var note models.Note
	err := s.db.WithContext(ctx).First(&note, "id = ?", noteID).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if note.GroupID == nil {
		return note.CreatedByID == userID, nil
	}
	return s.IsMember(ctx, *note.GroupID, userID)
}
