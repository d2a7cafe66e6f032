package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/groupdesk/backend/internal/models"
	"github.com/groupdesk/backend/internal/store"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User, passwordHash string) error {
	// Emails are stored lowercase so lookups and the duplicate check are
	// case-insensitive, matching the jsonfile backend.
	user.Email = strings.ToLower(user.Email)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.First(&existing, "LOWER(email) = ?", user.Email).Error
		if err == nil {
			return store.ErrEmailTaken
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		account := models.Account{
			UserID:       user.ID,
			Provider:     models.ProviderCredentials,
			PasswordHash: passwordHash,
		}
		return tx.Create(&account).Error
	})
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) PasswordHash(ctx context.Context, userID uuid.UUID) (string, error) {
	var account models.Account
	err := s.db.WithContext(ctx).
		First(&account, "user_id = ? AND provider = ?", userID, models.ProviderCredentials).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", store.ErrNotFound
		}
		return "", err
	}
	return account.PasswordHash, nil
}

func (s *Store) UpdateUserImage(ctx context.Context, userID uuid.UUID, imageURL string) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("image", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SearchUsers(ctx context.Context, emailQuery string, limit int) ([]models.User, error) {
	if limit <= 0 || limit > store.SearchLimit {
		limit = store.SearchLimit
	}

	var users []models.User
	pattern := "%" + strings.ToLower(emailQuery) + "%"
	err := s.db.WithContext(ctx).
		Where("LOWER(email) LIKE ?", pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
