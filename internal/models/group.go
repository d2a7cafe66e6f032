package models

import "github.com/google/uuid"

// Group has no exposed update or delete operation; it only grows members.
type Group struct {
	BaseModel
	Name        string    `json:"name" gorm:"type:varchar(150);not null"`
	CreatedByID uuid.UUID `json:"createdByID" gorm:"type:uuid;not null;index"`
}
