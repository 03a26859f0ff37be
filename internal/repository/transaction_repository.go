package repository

import (
	"context"
	"errors"
	"time"

	"devflow/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

type TransactionRepositoryInterface interface {
	Create(ctx context.Context, t *model.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	GetByUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]model.Transaction, error)
	Update(ctx context.Context, t *model.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumByType(ctx context.Context, userID uuid.UUID, txType string, filter TransactionFilter) (decimal.Decimal, error)
}

var _ TransactionRepositoryInterface = (*TransactionRepository)(nil)

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// TransactionFilter narrows list and aggregation queries. Zero time bounds
// mean unbounded; a nil ProjectID means all projects.
type TransactionFilter struct {
	Start     time.Time
	End       time.Time
	ProjectID *uuid.UUID
}

func (f TransactionFilter) apply(q *gorm.DB) *gorm.DB {
	if !f.Start.IsZero() {
		q = q.Where("date >= ?", f.Start)
	}
	if !f.End.IsZero() {
		q = q.Where("date <= ?", f.End)
	}
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}
	return q
}

func (r *TransactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) GetByUser(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]model.Transaction, error) {
	var transactions []model.Transaction
	q := filter.apply(r.db.WithContext(ctx).Where("user_id = ?", userID))
	err := q.Order("date DESC").Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) Update(ctx context.Context, t *model.Transaction) error {
	result := r.db.WithContext(ctx).Save(t)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// SumByType totals amounts of one transaction type for a user within the
// filter window.
func (r *TransactionRepository) SumByType(ctx context.Context, userID uuid.UUID, txType string, filter TransactionFilter) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := filter.apply(r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType))
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
