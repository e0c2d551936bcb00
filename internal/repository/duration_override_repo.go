package repository

import (
	"context"

	"gorm.io/gorm"

	"slotboard/backend/internal/model"
)

// DurationOverrideRepository duration override data access.
type DurationOverrideRepository interface {
	ListBySlot(ctx context.Context, slotID string) ([]model.SlotDurationOverride, error)
	// Replace upserts by (slot, year, week): any existing rows for the key
	// are removed in the same transaction, so the key stays unique.
	Replace(ctx context.Context, o *model.SlotDurationOverride) error
	DeleteByKey(ctx context.Context, slotID string, year, weekNumber int) error
	DeleteBySlot(ctx context.Context, slotID string) error
}

type durationOverrideRepo struct {
	db *gorm.DB
}

// NewDurationOverrideRepo creates a DurationOverrideRepository.
func NewDurationOverrideRepo(db *gorm.DB) DurationOverrideRepository {
	return &durationOverrideRepo{db: db}
}

func (r *durationOverrideRepo) ListBySlot(ctx context.Context, slotID string) ([]model.SlotDurationOverride, error) {
	var list []model.SlotDurationOverride
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *durationOverrideRepo) Replace(ctx context.Context, o *model.SlotDurationOverride) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("slot_id = ? AND year = ? AND week_number = ?", o.SlotID, o.Year, o.WeekNumber).
			Delete(&model.SlotDurationOverride{}).Error; err != nil {
			return err
		}
		return tx.Create(o).Error
	})
}

func (r *durationOverrideRepo) DeleteByKey(ctx context.Context, slotID string, year, weekNumber int) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ? AND year = ? AND week_number = ?", slotID, year, weekNumber).
		Delete(&model.SlotDurationOverride{}).Error
}

func (r *durationOverrideRepo) DeleteBySlot(ctx context.Context, slotID string) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Delete(&model.SlotDurationOverride{}).Error
}
