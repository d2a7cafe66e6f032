package models

import "github.com/google/uuid"

const ProviderCredentials = "credentials"

// Account links a user to an auth provider. For credentials accounts the
// password hash is stored here rather than on the profile row.
type Account struct {
	BaseModel
	UserID       uuid.UUID `json:"userID" gorm:"type:uuid;not null;index;uniqueIndex:idx_account_user_provider"`
	Provider     string    `json:"provider" gorm:"type:varchar(50);not null;default:'credentials';uniqueIndex:idx_account_user_provider"`
	PasswordHash string    `json:"-" gorm:"type:text"`
	User         User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
