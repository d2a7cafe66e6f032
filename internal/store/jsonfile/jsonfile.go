// Package jsonfile implements store.Store as a single JSON document on
// disk, rewritten wholesale on every mutation. A process-local mutex
// serializes read-modify-write cycles, but there is no cross-process
// locking: concurrent writers from separate processes lose updates
// (last writer wins). This backend is a single-process local-development
// affordance, never a system of record.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
)

var _ store.Store = (*Store)(nil)

// document is the whole store. The sessions and verificationTokens arrays
// are owned by the auth library in some deployments; they are carried
// through untouched so opening such a file does not drop them.
type document struct {
	Users              []models.User            `json:"users"`
	Accounts           []models.Account         `json:"accounts"`
	Sessions           []json.RawMessage        `json:"sessions"`
	VerificationTokens []json.RawMessage        `json:"verificationTokens"`
	Groups             []models.Group           `json:"groups"`
	GroupMembers       []models.GroupMembership `json:"group_members"`
	Todos              []models.Todo            `json:"todos"`
	Notes              []models.Note            `json:"notes"`
	Messages           []models.Message         `json:"messages"`
}

func emptyDocument() *document {
	return &document{
		Users:              []models.User{},
		Accounts:           []models.Account{},
		Sessions:           []json.RawMessage{},
		VerificationTokens: []json.RawMessage{},
		Groups:             []models.Group{},
		GroupMembers:       []models.GroupMembership{},
		Todos:              []models.Todo{},
		Notes:              []models.Note{},
		Messages:           []models.Message{},
	}
}

type Store struct {
	path string
	mu   sync.Mutex
}

// Open creates the file with an empty document when it does not exist yet.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(emptyDocument()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return emptyDocument(), nil
		}
		return nil, err
	}

	doc := emptyDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Store) save(doc *document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

func (s *Store) Close() error {
	return nil
}

// stamp assigns the identity and timestamps the relational backend would.
func stamp(b *models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
