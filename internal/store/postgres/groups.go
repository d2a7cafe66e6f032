package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
)

func (s *Store) CreateGroup(ctx context.Context, name string, createdBy uuid.UUID) (*models.Group, error) {
	group := models.Group{
		Name:        name,
		CreatedByID: createdBy,
	}

	// Group insert and creator enrollment share one transaction so a group
	// with zero members is never observable.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		membership := models.GroupMembership{
			GroupID: group.ID,
			UserID:  createdBy,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Store) MemberGroups(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).
		Model(&models.Group{}).
		Joins("JOIN group_memberships ON group_memberships.group_id = groups.id").
		Where("group_memberships.user_id = ?", userID).
		Order("groups.created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *Store) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return store.ErrNotFound
		}
		return err
	}

	membership := models.GroupMembership{
		GroupID: groupID,
		UserID:  userID,
	}
	// The unique (group_id, user_id) index makes re-adding a no-op.
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&membership).Error
}

func (s *Store) ListMembers(ctx context.Context, groupID uuid.UUID) ([]store.Member, error) {
	var memberships []models.GroupMembership
	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}

	profiles := map[uuid.UUID]models.User{}
	if len(userIDs) > 0 {
		var users []models.User
		if err := s.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err == nil {
			for _, u := range users {
				profiles[u.ID] = u
			}
		}
		// A failed profile join degrades to id-only rows below instead of
		// failing the whole listing.
	}

	members := make([]store.Member, 0, len(memberships))
	for _, m := range memberships {
		member := store.Member{
			ID:       m.UserID,
			JoinedAt: m.CreatedAt,
		}
		if u, ok := profiles[m.UserID]; ok {
			member.Email = u.Email
			member.Name = u.Name
			member.Image = u.Image
		}
		members = append(members, member)
	}
	return members, nil
}
