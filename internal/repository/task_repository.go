package repository

import (
	"context"
	"errors"

	"devflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Task, error)
	NextPosition(ctx context.Context, columnID uuid.UUID) (int, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	MoveTask(ctx context.Context, taskID uuid.UUID, columnID uuid.UUID, newPosition int) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByColumnID retrieves all tasks in a column, ordered top to bottom.
func (r *TaskRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).Where("column_id = ?", columnID).Order("position").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// NextPosition returns the position a task appended to the column should get:
// one past the current maximum, or 0 for an empty column. Gaps left by
// deletions are irrelevant; only the maximum matters.
func (r *TaskRepository) NextPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	var next struct {
		Next int
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("COALESCE(MAX(position), -1) + 1 as next").
		Where("column_id = ?", columnID).
		Scan(&next).Error

	return next.Next, err
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID. Sibling positions are not re-compacted;
// ordering reads tolerate gaps.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// MoveTask updates the position and/or column of a task, renumbering siblings
// so positions stay consistent in both columns.
func (r *TaskRepository) MoveTask(ctx context.Context, taskID uuid.UUID, columnID uuid.UUID, newPosition int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		oldColumnID := task.ColumnID
		oldPosition := task.Position

		if oldColumnID != columnID {
			// Close the hole in the old column.
			if err := tx.Model(&model.Task{}).
				Where("column_id = ? AND position > ?", oldColumnID, oldPosition).
				Update("position", gorm.Expr("position - 1")).Error; err != nil {
				return err
			}

			// Make space in the new column at the target position.
			if err := tx.Model(&model.Task{}).
				Where("column_id = ? AND position >= ?", columnID, newPosition).
				Update("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}

			task.ColumnID = columnID
			task.Position = newPosition
		} else if oldPosition != newPosition {
			if oldPosition < newPosition {
				// Moving down: shift the tasks in between up by one.
				if err := tx.Model(&model.Task{}).
					Where("column_id = ? AND position > ? AND position <= ?", columnID, oldPosition, newPosition).
					Update("position", gorm.Expr("position - 1")).Error; err != nil {
					return err
				}
			} else {
				// Moving up: shift the tasks in between down by one.
				if err := tx.Model(&model.Task{}).
					Where("column_id = ? AND position >= ? AND position < ?", columnID, newPosition, oldPosition).
					Update("position", gorm.Expr("position + 1")).Error; err != nil {
					return err
				}
			}

			task.Position = newPosition
		}

		return tx.Save(&task).Error
	})
}
