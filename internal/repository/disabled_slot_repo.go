package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"slotboard/backend/internal/model"
)

// DisabledSlotRepository disabled-week override data access.
type DisabledSlotRepository interface {
	Create(ctx context.Context, d *model.DisabledSlot) error
	ListBySlot(ctx context.Context, slotID string) ([]model.DisabledSlot, error)
	// ListBySlotWeek returns the rows whose disable_date falls within
	// [weekStart, weekStart+7d). More than one row is possible in legacy
	// data; callers treat any match as "disabled".
	ListBySlotWeek(ctx context.Context, slotID string, weekStart time.Time) ([]model.DisabledSlot, error)
	// DeleteBySlotWeek removes every row for the slot's week, so a
	// re-enable clears duplicates too.
	DeleteBySlotWeek(ctx context.Context, slotID string, weekStart time.Time) error
	// DeleteBySlot removes every disabled-week row of one slot.
	DeleteBySlot(ctx context.Context, slotID string) error
}

type disabledSlotRepo struct {
	db *gorm.DB
}

// NewDisabledSlotRepo creates a DisabledSlotRepository.
func NewDisabledSlotRepo(db *gorm.DB) DisabledSlotRepository {
	return &disabledSlotRepo{db: db}
}

func (r *disabledSlotRepo) Create(ctx context.Context, d *model.DisabledSlot) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *disabledSlotRepo) ListBySlot(ctx context.Context, slotID string) ([]model.DisabledSlot, error) {
	var list []model.DisabledSlot
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("disable_date ASC").
		Find(&list).Error
	return list, err
}

func (r *disabledSlotRepo) ListBySlotWeek(ctx context.Context, slotID string, weekStart time.Time) ([]model.DisabledSlot, error) {
	var list []model.DisabledSlot
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND disable_date >= ? AND disable_date < ?",
			slotID, weekStart, weekStart.AddDate(0, 0, 7)).
		Find(&list).Error
	return list, err
}

func (r *disabledSlotRepo) DeleteBySlotWeek(ctx context.Context, slotID string, weekStart time.Time) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ? AND disable_date >= ? AND disable_date < ?",
			slotID, weekStart, weekStart.AddDate(0, 0, 7)).
		Delete(&model.DisabledSlot{}).Error
}

func (r *disabledSlotRepo) DeleteBySlot(ctx context.Context, slotID string) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Delete(&model.DisabledSlot{}).Error
}
