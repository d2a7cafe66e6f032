package jsonfile

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
)

func (s *Store) CreateGroup(ctx context.Context, name string, createdBy uuid.UUID) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	group := models.Group{
		Name:        name,
		CreatedByID: createdBy,
	}
	stamp(&group.BaseModel)
	doc.Groups = append(doc.Groups, group)

	membership := models.GroupMembership{
		GroupID: group.ID,
		UserID:  createdBy,
	}
	stamp(&membership.BaseModel)
	doc.GroupMembers = append(doc.GroupMembers, membership)

	// One save for both records keeps group creation atomic.
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Store) MemberGroups(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	memberOf := map[uuid.UUID]bool{}
	for _, m := range doc.GroupMembers {
		if m.UserID == userID {
			memberOf[m.GroupID] = true
		}
	}

	groups := []models.Group{}
	for _, g := range doc.Groups {
		if memberOf[g.ID] {
			groups = append(groups, g)
		}
	}
	// Newest first, matching the relational backend's ORDER BY.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].CreatedAt.After(groups[j].CreatedAt)
	})
	return groups, nil
}

func (s *Store) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	return isMember(doc, groupID, userID), nil
}

func isMember(doc *document, groupID, userID uuid.UUID) bool {
	for _, m := range doc.GroupMembers {
		if m.GroupID == groupID && m.UserID == userID {
			return true
		}
	}
	return false
}

func (s *Store) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	userExists := false
	for _, u := range doc.Users {
		if u.ID == userID {
			userExists = true
			break
		}
	}
	if !userExists {
		return store.ErrNotFound
	}

	if isMember(doc, groupID, userID) {
		return nil
	}

	membership := models.GroupMembership{
		GroupID: groupID,
		UserID:  userID,
	}
	stamp(&membership.BaseModel)
	doc.GroupMembers = append(doc.GroupMembers, membership)
	return s.save(doc)
}

func (s *Store) ListMembers(ctx context.Context, groupID uuid.UUID) ([]store.Member, error) {
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

	members := []store.Member{}
	for _, m := range doc.GroupMembers {
		if m.GroupID != groupID {
			continue
		}
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
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
	return members, nil
}
