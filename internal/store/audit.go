package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"listd/internal/apperr"
	"listd/internal/models"
)

// AppendAudit records a notable event. Callers treat failures as non-fatal
// and only log them.
func (s *Store) AppendAudit(ctx context.Context, actorID *uuid.UUID, action, targetType string, targetID *string, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return apperr.Internal(err)
	}

	entry := models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   raw,
	}
	if err := s.conn(ctx).Create(&entry).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}
