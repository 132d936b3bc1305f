package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo is a list of tasks owned by exactly one user. Only the owner may
// mutate it; invitees see it read-only through the shared view.
type Todo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Tasks []Task `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"tasks"`
}

func (t *Todo) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
