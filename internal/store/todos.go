package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"listd/internal/apperr"
	"listd/internal/models"
)

// Todos not owned by the caller are reported as NotFound rather than
// Forbidden so their existence is not leaked.

// CreateTodo persists a new todo for the owner.
func (s *Store) CreateTodo(ctx context.Context, ownerID uuid.UUID, title, description string) (models.Todo, error) {
	todo := models.Todo{OwnerID: ownerID, Title: title, Description: description, Tasks: []models.Task{}}
	if err := s.conn(ctx).Create(&todo).Error; err != nil {
		return models.Todo{}, apperr.Internal(err)
	}
	return todo, nil
}

// TodosByOwner lists the owner's todos newest first, tasks included.
func (s *Store) TodosByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Todo, error) {
	todos := []models.Todo{}
	err := s.conn(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Preload("Tasks", taskOrder).
		Find(&todos).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return todos, nil
}

// TodoByID fetches a todo scoped to its owner.
func (s *Store) TodoByID(ctx context.Context, ownerID, todoID uuid.UUID) (models.Todo, error) {
	var todo models.Todo
	err := s.conn(ctx).
		Where("id = ? AND owner_id = ?", todoID, ownerID).
		Preload("Tasks", taskOrder).
		First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Todo{}, apperr.NotFound("todo not found")
		}
		return models.Todo{}, apperr.Internal(err)
	}
	return todo, nil
}

// UpdateTodo replaces the todo's title and description, owner-scoped.
func (s *Store) UpdateTodo(ctx context.Context, ownerID, todoID uuid.UUID, title, description string) (models.Todo, error) {
	res := s.conn(ctx).
		Model(&models.Todo{}).
		Where("id = ? AND owner_id = ?", todoID, ownerID).
		Updates(map[string]any{"title": title, "description": description})
	if res.Error != nil {
		return models.Todo{}, apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Todo{}, apperr.NotFound("todo not found")
	}
	return s.TodoByID(ctx, ownerID, todoID)
}

// DeleteTodo removes the todo and its tasks, owner-scoped.
func (s *Store) DeleteTodo(ctx context.Context, ownerID, todoID uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", todoID, ownerID).Delete(&models.Todo{})
		if res.Error != nil {
			return apperr.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("todo not found")
		}
		if err := tx.Where("todo_id = ?", todoID).Delete(&models.Task{}).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

func taskOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
