package repository

import (
	"context"
	"errors"

	"devflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// GetByUser lists a user's clients. Soft-deleted clients are excluded unless
// includeInactive is set.
func (r *ClientRepository) GetByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]model.Client, error) {
	var clients []model.Client
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) Update(ctx context.Context, client *model.Client) error {
	result := r.db.WithContext(ctx).Save(client)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Deactivate soft-deletes a client by flipping its active flag. The client's
// projects are left untouched.
func (r *ClientRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Client{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}
