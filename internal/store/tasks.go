package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"listd/internal/apperr"
	"listd/internal/models"
)

// Task operations verify the parent todo's ownership before touching the
// task, and report NotFound on any ownership mismatch.

// TasksForTodo lists a todo's tasks oldest first.
func (s *Store) TasksForTodo(ctx context.Context, ownerID, todoID uuid.UUID) ([]models.Task, error) {
	if _, err := s.TodoByID(ctx, ownerID, todoID); err != nil {
		return nil, err
	}
	tasks := []models.Task{}
	err := s.conn(ctx).
		Where("todo_id = ?", todoID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}

// CreateTask appends a task to an owned todo.
func (s *Store) CreateTask(ctx context.Context, ownerID, todoID uuid.UUID, content string, completed bool) (models.Task, error) {
	if _, err := s.TodoByID(ctx, ownerID, todoID); err != nil {
		return models.Task{}, err
	}
	task := models.Task{TodoID: todoID, Content: content, Completed: completed}
	if err := s.conn(ctx).Create(&task).Error; err != nil {
		return models.Task{}, apperr.Internal(err)
	}
	return task, nil
}

// taskForOwner fetches a task only if its parent todo belongs to the owner.
func (s *Store) taskForOwner(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error) {
	var task models.Task
	if err := s.conn(ctx).First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, apperr.NotFound("task not found")
		}
		return models.Task{}, apperr.Internal(err)
	}
	if _, err := s.TodoByID(ctx, ownerID, task.TodoID); err != nil {
		return models.Task{}, apperr.NotFound("task not found")
	}
	return task, nil
}

// UpdateTask applies a partial update to a task under an owned todo. Nil
// fields are left untouched.
func (s *Store) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, content *string, completed *bool) (models.Task, error) {
	task, err := s.taskForOwner(ctx, ownerID, taskID)
	if err != nil {
		return models.Task{}, err
	}

	changes := map[string]any{}
	if content != nil {
		changes["content"] = *content
	}
	if completed != nil {
		changes["completed"] = *completed
	}
	if len(changes) > 0 {
		if err := s.conn(ctx).Model(&task).Updates(changes).Error; err != nil {
			return models.Task{}, apperr.Internal(err)
		}
	}
	return task, nil
}

// DeleteTask removes a task under an owned todo.
func (s *Store) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	task, err := s.taskForOwner(ctx, ownerID, taskID)
	if err != nil {
		return err
	}
	if err := s.conn(ctx).Delete(&task).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}
