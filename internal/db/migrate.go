package db

import (
	"context"

	"gorm.io/gorm"

	"listd/internal/models"
)

// Migrate performs schema migrations for the persistent models and installs
// the partial unique index that makes duplicate-invitation prevention safe
// under concurrent creates. Rejected invitations are deleted rather than
// stored, so the index only ever covers PENDING and ACCEPTED rows.
func Migrate(ctx context.Context, database *gorm.DB) error {
	if err := database.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Todo{},
		&models.Task{},
		&models.Invitation{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	return database.WithContext(ctx).Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_invitations_active_pair
		ON invitations (inviter_id, invitee_id)
		WHERE status IN ('PENDING', 'ACCEPTED')
	`).Error
}
