// Package store provides gorm-backed data access for listd. The handle is
// passed explicitly to every consumer instead of living in package state, so
// tests can swap in an in-memory database. All lookup failures are reported
// as apperr kinds; callers never see raw gorm errors.
package store

import (
	"context"

	"gorm.io/gorm"
)

// Store wraps a gorm handle with the queries the service needs.
type Store struct {
	db *gorm.DB
}

// New wraps an open gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}
