package models

// User is the public profile. The password hash lives on the linked
// credentials Account and is never part of this struct, so search and
// member listings cannot leak it.
type User struct {
	BaseModel
	Email string  `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name  *string `json:"name,omitempty" gorm:"type:varchar(150)"`
	Image *string `json:"image,omitempty" gorm:"type:text"`
}

// DisplayName is the label shown for chat messages: name, else email,
// else "Unknown".
func (u *User) DisplayName() string {
	if u == nil {
		return "Unknown"
	}
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Unknown"
}
