package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Note represents an individual note owned by exactly one user.
type Note struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	PublicID  string    `gorm:"size:21;uniqueIndex;not null" json:"id"`
	Title     string    `gorm:"not null;size:200" json:"title"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Tags      TagList   `gorm:"type:text" json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID uint `gorm:"not null;index" json:"-"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TagList stores a note's tags as a single comma-joined text column.
// Tags are produced by the enrichment post-processing, which already
// strips commas, so the encoding round-trips.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	return strings.Join(t, ","), nil
}

func (t *TagList) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		raw = ""
	default:
		return fmt.Errorf("cannot scan %T into TagList", value)
	}
	if raw == "" {
		*t = TagList{}
		return nil
	}
	*t = strings.Split(raw, ",")
	return nil
}
