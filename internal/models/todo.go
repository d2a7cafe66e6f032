package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo belongs to a group, or to nobody but its creator when GroupID is
// nil ("personal" scope). GroupName is filled only by the dashboard
// listing that unions personal and group todos.
type Todo struct {
	BaseModel
	CreatedByID uuid.UUID   `json:"createdByID" gorm:"type:uuid;not null;index"`
	Title       string      `json:"title" gorm:"type:varchar(500);not null"`
	GroupID     *uuid.UUID  `json:"groupID" gorm:"type:uuid;index"`
	DueDate     *time.Time  `json:"dueDate"`
	AssignedTo  []uuid.UUID `json:"assignedTo" gorm:"serializer:json"`
	Completed   bool        `json:"completed" gorm:"not null;default:false"`
	GroupName   *string     `json:"groupName,omitempty" gorm:"-"`
	Group       *Group      `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}
