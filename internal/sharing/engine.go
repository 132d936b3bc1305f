// Package sharing implements the invitation engine: the lifecycle of sharing
// relationships between users and the visibility rules they grant.
//
// An invitation is created PENDING by the inviter and consumed exactly once
// by the invitee: accepting updates it in place, rejecting deletes the row.
// At most one PENDING or ACCEPTED invitation may exist per (inviter, invitee)
// pair; the application-level check here is backed by a partial unique index
// so the check-then-act sequence is safe under concurrent creates.
package sharing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"listd/internal/apperr"
	"listd/internal/models"
)

// Decision is the invitee's verdict on a pending invitation.
type Decision string

const (
	DecisionAccepted Decision = models.InviteStatusAccepted
	DecisionRejected Decision = "REJECTED"
)

// ParseDecision validates a raw decision value.
func ParseDecision(raw string) (Decision, error) {
	switch Decision(raw) {
	case DecisionAccepted, DecisionRejected:
		return Decision(raw), nil
	default:
		return "", apperr.Invalid(apperr.FieldError{
			Code:    "invalid_enum_value",
			Field:   "status",
			Message: "status must be ACCEPTED or REJECTED",
		})
	}
}

// Store is the persistence surface the engine needs.
type Store interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
	CreateInvitation(ctx context.Context, inv *models.Invitation) error
	ActiveInvitationExists(ctx context.Context, inviterID, inviteeID uuid.UUID) (bool, error)
	InvitationByID(ctx context.Context, id uuid.UUID) (models.Invitation, error)
	InvitationsByInviter(ctx context.Context, inviterID uuid.UUID) ([]models.Invitation, error)
	InvitationsByInvitee(ctx context.Context, inviteeID uuid.UUID) ([]models.Invitation, error)
	AcceptInvitation(ctx context.Context, id uuid.UUID) (models.Invitation, error)
	DeleteInvitation(ctx context.Context, id uuid.UUID) error
	AcceptedInviters(ctx context.Context, inviteeID uuid.UUID) ([]uuid.UUID, error)
	TodosByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Todo, error)
}

// Engine governs invitation lifecycle and shared-view materialization.
type Engine struct {
	store Store
}

// NewEngine builds an engine on the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Invite creates a PENDING invitation from the inviter to the user owning
// inviteeEmail. The invitee is pinned by id at creation time, so a later
// email change cannot redirect the invitation.
func (e *Engine) Invite(ctx context.Context, inviterID uuid.UUID, inviteeEmail string) (models.Invitation, error) {
	invitee, err := e.store.UserByEmail(ctx, inviteeEmail)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return models.Invitation{}, apperr.NotFound("invited user does not exist")
		}
		return models.Invitation{}, err
	}

	if invitee.ID == inviterID {
		return models.Invitation{}, apperr.Conflict("cannot invite yourself")
	}

	exists, err := e.store.ActiveInvitationExists(ctx, inviterID, invitee.ID)
	if err != nil {
		return models.Invitation{}, err
	}
	if exists {
		return models.Invitation{}, apperr.Conflict("invitation already exists or is pending/accepted")
	}

	inv := models.Invitation{
		InviterID:  inviterID,
		InviteeID:  invitee.ID,
		Status:     models.InviteStatusPending,
		Permission: models.PermissionRead,
	}
	if err := e.store.CreateInvitation(ctx, &inv); err != nil {
		// The unique index catches duplicates that raced past the check above.
		if apperr.KindOf(err) == apperr.KindConflict {
			return models.Invitation{}, apperr.Conflict("invitation already exists or is pending/accepted")
		}
		return models.Invitation{}, err
	}

	invitationsCreated.Inc()
	return inv, nil
}

// Invitations groups a user's invitations by direction.
type Invitations struct {
	Sent     []models.Invitation `json:"sent"`
	Received []models.Invitation `json:"received"`
}

// List returns all invitations the user has sent and received, newest first.
// Rejected invitations never appear because rejection deletes the record.
func (e *Engine) List(ctx context.Context, userID uuid.UUID) (Invitations, error) {
	sent, err := e.store.InvitationsByInviter(ctx, userID)
	if err != nil {
		return Invitations{}, err
	}
	received, err := e.store.InvitationsByInvitee(ctx, userID)
	if err != nil {
		return Invitations{}, err
	}
	return Invitations{Sent: sent, Received: received}, nil
}

// Respond consumes a PENDING invitation on behalf of its invitee. Accepting
// returns the updated record; rejecting deletes the record and returns nil,
// after which the invitation id is gone for good.
func (e *Engine) Respond(ctx context.Context, callerID, invitationID uuid.UUID, decision Decision) (*models.Invitation, error) {
	inv, err := e.store.InvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	// Only the invitee may answer; the inviter or a third party must not
	// resolve the invitation on the invitee's behalf.
	if inv.InviteeID != callerID {
		return nil, apperr.Forbidden("not your invitation")
	}

	if inv.Status != models.InviteStatusPending {
		return nil, apperr.Conflict("invitation already responded to")
	}

	switch decision {
	case DecisionAccepted:
		accepted, err := e.store.AcceptInvitation(ctx, invitationID)
		if err != nil {
			return nil, err
		}
		invitationsAccepted.Inc()
		return &accepted, nil
	case DecisionRejected:
		if err := e.store.DeleteInvitation(ctx, invitationID); err != nil {
			return nil, err
		}
		invitationsRejected.Inc()
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown decision %q", decision)
	}
}

// SharedTodos materializes the invitee's read-only view: the todos of every
// inviter with an ACCEPTED invitation to the user, concatenated. Each inviter
// contributes disjoint todos and the unique index guarantees one accepted
// invitation per pair, so no deduplication is needed.
func (e *Engine) SharedTodos(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	inviters, err := e.store.AcceptedInviters(ctx, userID)
	if err != nil {
		return nil, err
	}

	shared := []models.Todo{}
	for _, inviterID := range inviters {
		todos, err := e.store.TodosByOwner(ctx, inviterID)
		if err != nil {
			return nil, err
		}
		shared = append(shared, todos...)
	}
	return shared, nil
}
