package repository

import (
	"context"
	"errors"

	"devflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	CreateWithDefaultColumns(ctx context.Context, board *model.Board) ([]model.BoardColumn, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) ([]model.Board, error)
	GetColumns(ctx context.Context, boardID uuid.UUID) ([]model.BoardColumn, error)
	GetColumnByID(ctx context.Context, id uuid.UUID) (*model.BoardColumn, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateWithDefaultColumns creates the board together with its fixed starter
// columns in one transaction. Every board begins with the same four columns.
func (r *BoardRepository) CreateWithDefaultColumns(ctx context.Context, board *model.Board) ([]model.BoardColumn, error) {
	var columns []model.BoardColumn
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		for _, def := range model.DefaultColumns() {
			column := model.BoardColumn{
				BoardID:  board.ID,
				Name:     def.Name,
				Color:    def.Color,
				Position: def.Position,
			}
			if err := tx.Create(&column).Error; err != nil {
				return err
			}
			columns = append(columns, column)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetColumns(ctx context.Context, boardID uuid.UUID) ([]model.BoardColumn, error) {
	var columns []model.BoardColumn
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&columns).Error
	return columns, err
}

func (r *BoardRepository) GetColumnByID(ctx context.Context, id uuid.UUID) (*model.BoardColumn, error) {
	var column model.BoardColumn
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	result := r.db.WithContext(ctx).Save(board)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}

// Delete removes a board with its columns and tasks in one transaction.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM tasks WHERE column_id IN (
				SELECT id FROM board_columns WHERE board_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.BoardColumn{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Board{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
}
