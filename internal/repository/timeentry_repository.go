package repository

import (
	"context"
	"errors"
	"time"

	"devflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

type TimeEntryRepositoryInterface interface {
	Create(ctx context.Context, entry *model.TimeEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error)
	GetByUser(ctx context.Context, userID uuid.UUID, filter TimeEntryFilter) ([]model.TimeEntry, error)
	Update(ctx context.Context, entry *model.TimeEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetRunning(ctx context.Context, userID uuid.UUID) (*model.TimeEntry, error)
	SumMinutes(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error)
}

var _ TimeEntryRepositoryInterface = (*TimeEntryRepository)(nil)

func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

// TimeEntryFilter narrows list and aggregation queries. Zero time bounds mean
// unbounded; a nil ProjectID means all projects.
type TimeEntryFilter struct {
	Start     time.Time
	End       time.Time
	ProjectID *uuid.UUID
}

func (f TimeEntryFilter) apply(q *gorm.DB) *gorm.DB {
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

func (r *TimeEntryRepository) Create(ctx context.Context, entry *model.TimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *TimeEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// GetByUser lists completed entries newest first. Running timers are not
// included.
func (r *TimeEntryRepository) GetByUser(ctx context.Context, userID uuid.UUID, filter TimeEntryFilter) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	q := filter.apply(r.db.WithContext(ctx).
		Preload("Project").
		Where("user_id = ? AND end_time IS NOT NULL", userID))
	err := q.Order("date DESC").Find(&entries).Error
	return entries, err
}

func (r *TimeEntryRepository) Update(ctx context.Context, entry *model.TimeEntry) error {
	result := r.db.WithContext(ctx).Save(entry)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTimeEntryNotFound
	}
	return nil
}

func (r *TimeEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TimeEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTimeEntryNotFound
	}
	return nil
}

// GetRunning returns the user's active timer, or (nil, nil) when none is
// running.
func (r *TimeEntryRepository) GetRunning(ctx context.Context, userID uuid.UUID) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND end_time IS NULL", userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// SumMinutes totals recorded minutes for a user within [start, end). Zero
// bounds mean unbounded on that side.
func (r *TimeEntryRepository) SumMinutes(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	var total int
	q := r.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("user_id = ? AND duration_minutes IS NOT NULL", userID)
	if !start.IsZero() {
		q = q.Where("date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("date < ?", end)
	}
	err := q.Select("COALESCE(SUM(duration_minutes), 0)").Scan(&total).Error
	return total, err
}
