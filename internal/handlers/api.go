// Package handlers terminates HTTP for listd: routing, authentication,
// request validation, and translation of domain errors to transport codes.
package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"listd/internal/sharing"
	"listd/internal/store"
	"listd/internal/token"
)

// API wires the store, the invitation engine, and the token issuer into HTTP
// handlers.
type API struct {
	store  *store.Store
	engine *sharing.Engine
	tokens *token.Issuer
}

// New initialises the API layer.
func New(st *store.Store, engine *sharing.Engine, tokens *token.Issuer) (*API, error) {
	if st == nil {
		return nil, errors.New("store is required")
	}
	if engine == nil {
		return nil, errors.New("sharing engine is required")
	}
	if tokens == nil {
		return nil, errors.New("token issuer is required")
	}
	return &API{store: st, engine: engine, tokens: tokens}, nil
}

// audit records an event best-effort; failures are logged, never surfaced.
func (a *API) audit(ctx context.Context, actorID *uuid.UUID, action, targetType string, targetID *string, metadata map[string]any) {
	if err := a.store.AppendAudit(ctx, actorID, action, targetType, targetID, metadata); err != nil {
		log.Error().Err(err).Str("action", action).Msg("append audit log")
	}
}
