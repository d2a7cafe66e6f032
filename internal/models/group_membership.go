package models

import "github.com/google/uuid"

// GroupMembership is the (group, user) relation that grants access to the
// group's todos, notes and messages. The pair is unique; CreatedAt doubles
// as the join time.
type GroupMembership struct {
	BaseModel
	GroupID uuid.UUID `json:"groupID" gorm:"type:uuid;not null;index;uniqueIndex:idx_group_user"`
	UserID  uuid.UUID `json:"userID" gorm:"type:uuid;not null;index;uniqueIndex:idx_group_user"`
	Group   Group     `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	User    User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
