package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultStyle is stored when a generation request carries no style.
const DefaultStyle = "default"

// Tweet is a generated text stored together with the topic that produced it.
type Tweet struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Topic     string    `gorm:"type:text;not null" json:"topic"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Style     string    `gorm:"type:text;default:'default'" json:"style"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

func (t *Tweet) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Style == "" {
		t.Style = DefaultStyle
	}
	// created_at is assigned once here and never touched by an update path
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return
}
