// Package store defines the record-store capability behind the access
// layer. Two backends implement it: postgres (GORM) for production and
// jsonfile for single-process local development. The backend is picked
// once at startup; both must produce the same observable results, modulo
// identifier generation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/models"
)

var (
	// ErrNotFound is the cross-backend stand-in for gorm.ErrRecordNotFound.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned by CreateUser on a duplicate email.
	ErrEmailTaken = errors.New("email already registered")
)

// SearchLimit caps user search results regardless of what callers ask for.
const SearchLimit = 20

// Scope selects which todos or notes a listing returns.
// The zero value is the dashboard "everything visible to the user" scope.
type Scope struct {
	Personal bool
	GroupID  *uuid.UUID
}

// PersonalScope returns todos/notes with no group, created by the caller.
func PersonalScope() Scope { return Scope{Personal: true} }

// GroupScope returns everything in one group. Membership is checked by the
// authorization guard, not here.
func GroupScope(id uuid.UUID) Scope { return Scope{GroupID: &id} }

// TodoPatch merges only the fields that are present; everything else keeps
// its prior value. DueDateSet/AssignedToSet distinguish "absent" from
// "set to null/empty".
type TodoPatch struct {
	Title         *string
	Completed     *bool
	DueDate       *time.Time
	DueDateSet    bool
	AssignedTo    []uuid.UUID
	AssignedToSet bool
}

// Empty reports whether the patch would change nothing.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Completed == nil && !p.DueDateSet && !p.AssignedToSet
}

// Member is a group member's profile joined with the membership row. When
// the profile join is missing the row degrades to ID plus join time rather
// than failing the whole listing.
type Member struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email,omitempty"`
	Name     *string   `json:"name,omitempty"`
	Image    *string   `json:"image,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Store is the persistence capability handed to handlers and services at
// process start. Every operation takes a context and fails explicitly when
// the backing store is unreachable.
type Store interface {
	// CreateUser persists the profile and its credentials account as one
	// atomic write. Returns ErrEmailTaken on duplicates.
	CreateUser(ctx context.Context, user *models.User, passwordHash string) error
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// PasswordHash returns the credentials-account hash for a user, or
	// ErrNotFound when the user has no credentials account.
	PasswordHash(ctx context.Context, userID uuid.UUID) (string, error)
	UpdateUserImage(ctx context.Context, userID uuid.UUID, imageURL string) error
	// SearchUsers does a case-insensitive substring match on email, capped
	// at SearchLimit.
	SearchUsers(ctx context.Context, emailQuery string, limit int) ([]models.User, error)

	// CreateGroup inserts the group and enrolls the creator as its first
	// member atomically; a group with zero members must never be observable.
	CreateGroup(ctx context.Context, name string, createdBy uuid.UUID) (*models.Group, error)
	// MemberGroups lists the groups a user belongs to, newest first.
	MemberGroups(ctx context.Context, userID uuid.UUID) ([]models.Group, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	// AddMember is idempotent: re-adding an existing member is a no-op.
	// Returns ErrNotFound when the user does not exist.
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	// ListMembers returns member profiles ordered by join time ascending.
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]Member, error)

	ListTodos(ctx context.Context, userID uuid.UUID, scope Scope) ([]models.Todo, error)
	CreateTodo(ctx context.Context, todo *models.Todo) error
	// UpdateTodo returns (nil, nil) when the todo does not exist.
	UpdateTodo(ctx context.Context, id uuid.UUID, patch TodoPatch) (*models.Todo, error)
	// DeleteTodo succeeds regardless of prior existence.
	DeleteTodo(ctx context.Context, id uuid.UUID) error
	// TodoAccess is true iff the todo is personal and created by the user,
	// or grouped and the user is currently a member. False for unknown IDs.
	TodoAccess(ctx context.Context, userID, todoID uuid.UUID) (bool, error)

	// ListNotes mirrors ListTodos except the dashboard scope returns an
	// empty list: an "all notes" view is intentionally unsupported.
	ListNotes(ctx context.Context, userID uuid.UUID, scope Scope) ([]models.Note, error)
	CreateNote(ctx context.Context, note *models.Note) error
	// UpdateNote replaces the content; returns (nil, nil) for unknown IDs.
	UpdateNote(ctx context.Context, id uuid.UUID, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
	NoteAccess(ctx context.Context, userID, noteID uuid.UUID) (bool, error)

	// ListMessages returns the group's messages ascending by creation time,
	// each enriched with the sender's display name.
	ListMessages(ctx context.Context, groupID uuid.UUID) ([]models.Message, error)
	CreateMessage(ctx context.Context, msg *models.Message) error

	Close() error
}
