package jsonfile

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/models"
)

func (s *Store) ListMessages(ctx context.Context, groupID uuid.UUID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	profiles := map[uuid.UUID]models.User{}
	for _, u := range doc.Users {
		profiles[u.ID] = u
	}

	messages := []models.Message{}
	for _, m := range doc.Messages {
		if m.GroupID != groupID {
			continue
		}
		if u, ok := profiles[m.UserID]; ok {
			m.UserName = u.DisplayName()
		} else {
			m.UserName = "Unknown"
		}
		messages = append(messages, m)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	stamp(&msg.BaseModel)
	doc.Messages = append(doc.Messages, *msg)
	return s.save(doc)
}
