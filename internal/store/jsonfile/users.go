package jsonfile

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	email := strings.ToLower(user.Email)
	for _, u := range doc.Users {
		if strings.EqualFold(u.Email, email) {
			return store.ErrEmailTaken
		}
	}

	stamp(&user.BaseModel)
	user.Email = email
	doc.Users = append(doc.Users, *user)

	account := models.Account{
		UserID:       user.ID,
		Provider:     models.ProviderCredentials,
		PasswordHash: passwordHash,
	}
	stamp(&account.BaseModel)
	doc.Accounts = append(doc.Accounts, account)

	// Profile and account land in one file write, so a user without a
	// credentials account is never observable.
	return s.save(doc)
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, u := range doc.Users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, u := range doc.Users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) PasswordHash(ctx context.Context, userID uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}
	for _, a := range doc.Accounts {
		if a.UserID == userID && a.Provider == models.ProviderCredentials {
			return a.PasswordHash, nil
		}
	}
	return "", store.ErrNotFound
}

func (s *Store) UpdateUserImage(ctx context.Context, userID uuid.UUID, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i := range doc.Users {
		if doc.Users[i].ID == userID {
			doc.Users[i].Image = &imageURL
			stamp(&doc.Users[i].BaseModel)
			return s.save(doc)
		}
	}
	return store.ErrNotFound
}

func (s *Store) SearchUsers(ctx context.Context, emailQuery string, limit int) ([]models.User, error) {
	if limit <= 0 || limit > store.SearchLimit {
		limit = store.SearchLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(emailQuery)
	matches := []models.User{}
	for _, u := range doc.Users {
		if strings.Contains(strings.ToLower(u.Email), needle) {
			matches = append(matches, u)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}
