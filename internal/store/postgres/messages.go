package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/models"
)

func (s *Store) ListMessages(ctx context.Context, groupID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	senderIDs := make([]uuid.UUID, 0, len(messages))
	seen := map[uuid.UUID]bool{}
	for _, m := range messages {
		if !seen[m.UserID] {
			seen[m.UserID] = true
			senderIDs = append(senderIDs, m.UserID)
		}
	}

	senders := map[uuid.UUID]models.User{}
	if len(senderIDs) > 0 {
		var users []models.User
		if err := s.db.WithContext(ctx).Where("id IN ?", senderIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			senders[u.ID] = u
		}
	}

	for i := range messages {
		if u, ok := senders[messages[i].UserID]; ok {
			messages[i].UserName = u.DisplayName()
		} else {
			messages[i].UserName = "Unknown"
		}
	}
	return messages, nil
}

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}
