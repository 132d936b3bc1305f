package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"listd/internal/apperr"
	"listd/internal/models"
)

// CreateInvitation persists a PENDING invitation. The partial unique index on
// (inviter_id, invitee_id) turns a concurrent duplicate into Conflict here,
// backing the engine's check-then-act sequence.
func (s *Store) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	if err := s.conn(ctx).Create(inv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("invitation already exists")
		}
		return apperr.Internal(err)
	}
	return nil
}

// ActiveInvitationExists reports whether a PENDING or ACCEPTED invitation
// already links the pair.
func (s *Store) ActiveInvitationExists(ctx context.Context, inviterID, inviteeID uuid.UUID) (bool, error) {
	var count int64
	err := s.conn(ctx).
		Model(&models.Invitation{}).
		Where("inviter_id = ? AND invitee_id = ? AND status IN ?",
			inviterID, inviteeID, []string{models.InviteStatusPending, models.InviteStatusAccepted}).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

// InvitationByID fetches an invitation by primary key.
func (s *Store) InvitationByID(ctx context.Context, id uuid.UUID) (models.Invitation, error) {
	var inv models.Invitation
	if err := s.conn(ctx).First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Invitation{}, apperr.NotFound("invitation not found")
		}
		return models.Invitation{}, apperr.Internal(err)
	}
	return inv, nil
}

// InvitationsByInviter lists invitations the user has sent, newest first.
func (s *Store) InvitationsByInviter(ctx context.Context, inviterID uuid.UUID) ([]models.Invitation, error) {
	return s.listInvitations(ctx, "inviter_id = ?", inviterID)
}

// InvitationsByInvitee lists invitations the user has received, newest first.
func (s *Store) InvitationsByInvitee(ctx context.Context, inviteeID uuid.UUID) ([]models.Invitation, error) {
	return s.listInvitations(ctx, "invitee_id = ?", inviteeID)
}

func (s *Store) listInvitations(ctx context.Context, cond string, userID uuid.UUID) ([]models.Invitation, error) {
	invs := []models.Invitation{}
	err := s.conn(ctx).
		Where(cond, userID).
		Order("created_at DESC").
		Preload("Inviter").
		Preload("Invitee").
		Find(&invs).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return invs, nil
}

// AcceptInvitation transitions the row to ACCEPTED in place.
func (s *Store) AcceptInvitation(ctx context.Context, id uuid.UUID) (models.Invitation, error) {
	res := s.conn(ctx).
		Model(&models.Invitation{}).
		Where("id = ? AND status = ?", id, models.InviteStatusPending).
		Update("status", models.InviteStatusAccepted)
	if res.Error != nil {
		return models.Invitation{}, apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		// Zero rows means the invitation is either already resolved or gone;
		// re-fetch to report the right one.
		if _, err := s.InvitationByID(ctx, id); err != nil {
			return models.Invitation{}, err
		}
		return models.Invitation{}, apperr.Conflict("invitation already responded to")
	}
	return s.InvitationByID(ctx, id)
}

// DeleteInvitation removes the row; used for rejection, which stores nothing.
func (s *Store) DeleteInvitation(ctx context.Context, id uuid.UUID) error {
	res := s.conn(ctx).Delete(&models.Invitation{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("invitation not found")
	}
	return nil
}

// AcceptedInviters returns the ids of every user with an ACCEPTED invitation
// to the given invitee.
func (s *Store) AcceptedInviters(ctx context.Context, inviteeID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := s.conn(ctx).
		Model(&models.Invitation{}).
		Where("invitee_id = ? AND status = ?", inviteeID, models.InviteStatusAccepted).
		Order("created_at ASC").
		Pluck("inviter_id", &ids).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return ids, nil
}
