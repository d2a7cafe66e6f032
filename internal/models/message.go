package models

import "github.com/google/uuid"

// Message is append-only group chat. UserName is resolved at read time
// from the sender's profile and never persisted.
type Message struct {
	BaseModel
	GroupID  uuid.UUID `json:"groupID" gorm:"type:uuid;not null;index"`
	UserID   uuid.UUID `json:"userID" gorm:"type:uuid;not null;index"`
	Content  string    `json:"content" gorm:"type:text;not null"`
	UserName string    `json:"userName,omitempty" gorm:"-"`
	Group    Group     `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}
