package jsonfile

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
)

func (s *Store) ListNotes(ctx context.Context, userID uuid.UUID, scope store.Scope) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	notes := []models.Note{}

	switch {
	case scope.Personal:
		for _, n := range doc.Notes {
			if n.GroupID == nil && n.CreatedByID == userID {
				notes = append(notes, n)
			}
		}

	case scope.GroupID != nil:
		for _, n := range doc.Notes {
			if n.GroupID != nil && *n.GroupID == *scope.GroupID {
				notes = append(notes, n)
			}
		}

	default:
		// No dashboard view for notes.
		return notes, nil
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	stamp(&note.BaseModel)
	doc.Notes = append(doc.Notes, *note)
	return s.save(doc)
}

func (s *Store) UpdateNote(ctx context.Context, id uuid.UUID, content string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range doc.Notes {
		if doc.Notes[i].ID != id {
			continue
		}
		doc.Notes[i].Content = content
		stamp(&doc.Notes[i].BaseModel)
		if err := s.save(doc); err != nil {
			return nil, err
		}
		updated := doc.Notes[i]
		return &updated, nil
	}
	return nil, nil
}

func (s *Store) DeleteNote(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	kept := doc.Notes[:0]
	removed := false
	for _, n := range doc.Notes {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	doc.Notes = kept

	if !removed {
		return nil
	}
	return s.save(doc)
}

func (s *Store) NoteAccess(ctx context.Context, userID, noteID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}

	for _, n := range doc.Notes {
		if n.ID != noteID {
			continue
		}
		if n.GroupID == nil {
			return n.CreatedByID == userID, nil
		}
		return isMember(doc, *n.GroupID, userID), nil
	}
	return false, nil
}
