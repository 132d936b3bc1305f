package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation statuses stored at rest. A rejection deletes the row instead of
// recording a REJECTED state, so only these two values ever persist.
const (
	InviteStatusPending  = "PENDING"
	InviteStatusAccepted = "ACCEPTED"
)

// PermissionRead is the only share permission currently supported.
const PermissionRead = "read"

// Invitation is an offer from an inviter to share all of their todos,
// read-only, with an invitee. The invitee is resolved from an email once at
// creation time and pinned by id; later email changes do not redirect it.
//
// The migration adds a partial unique index on (inviter_id, invitee_id)
// scoped to PENDING/ACCEPTED rows, making the duplicate-prevention check safe
// under concurrent creates.
type Invitation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InviterID  uuid.UUID `gorm:"type:uuid;not null;index" json:"inviter_id"`
	InviteeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"invitee_id"`
	Status     string    `gorm:"type:text;not null" json:"status"`
	Permission string    `gorm:"type:text;not null;default:read" json:"permission"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Inviter *User `gorm:"constraint:OnDelete:CASCADE;foreignKey:InviterID;references:ID" json:"inviter,omitempty"`
	Invitee *User `gorm:"constraint:OnDelete:CASCADE;foreignKey:InviteeID;references:ID" json:"invitee,omitempty"`
}

func (i *Invitation) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
