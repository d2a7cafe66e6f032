// Package services holds the authorization guard every entry point runs
// before touching a resource.
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/store"
)

// ErrForbidden is returned for both "no access" and "does not exist" so a
// rejection never reveals whether the resource is real.
var ErrForbidden = errors.New("access denied")

type AccessService struct {
	store store.Store
}

func NewAccessService(s store.Store) *AccessService {
	return &AccessService{store: s}
}

// RequireMember rejects callers that are not currently members of the
// group. Membership is resolved at call time, never cached.
func (a *AccessService) RequireMember(ctx context.Context, userID, groupID uuid.UUID) error {
	member, err := a.store.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrForbidden
	}
	return nil
}

// RequireTodoAccess allows the creator of a personal todo or any current
// member of a group todo's group.
func (a *AccessService) RequireTodoAccess(ctx context.Context, userID, todoID uuid.UUID) error {
	ok, err := a.store.TodoAccess(ctx, userID, todoID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// RequireNoteAccess mirrors RequireTodoAccess for notes.
func (a *AccessService) RequireNoteAccess(ctx context.Context, userID, noteID uuid.UUID) error {
	ok, err := a.store.NoteAccess(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
