package models

import "github.com/google/uuid"

// Note is a todo's simpler sibling: content only, same personal/group
// scoping rules.
type Note struct {
	BaseModel
	CreatedByID uuid.UUID  `json:"createdByID" gorm:"type:uuid;not null;index"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	GroupID     *uuid.UUID `json:"groupID" gorm:"type:uuid;index"`
	Group       *Group     `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}
