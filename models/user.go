package models

import "time"

// User represents a user in the system, keyed by the identity provider's
// stable subject. Deleting a user cascades to their notes at the schema level.
type User struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	PublicID  string    `gorm:"size:21;uniqueIndex;not null" json:"id"`
	AuthID    string    `gorm:"size:255;uniqueIndex;not null" json:"-"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:100" json:"name,omitempty"`
	Notes     []Note    `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
