package repository

import (
	"context"

	"gorm.io/gorm"

	"slotboard/backend/internal/model"
)

// SlotRepository slot data access.
type SlotRepository interface {
	Create(ctx context.Context, slot *model.Slot) error
	GetByID(ctx context.Context, id string) (*model.Slot, error)
	// ListByTimetable returns all slots of a timetable with their
	// disabled-week and duration-override children preloaded.
	ListByTimetable(ctx context.Context, timetableID string) ([]model.Slot, error)
	// ListEquivalent returns the recurrence-equivalent slots of the given
	// (day, start, end) triple within one timetable, excluding excludeID.
	ListEquivalent(ctx context.Context, timetableID, day, startTime, endTime, excludeID string) ([]model.Slot, error)
	Update(ctx context.Context, slot *model.Slot) error
	SetDisabled(ctx context.Context, slotID string, disabled bool) error
	Delete(ctx context.Context, id string) error
}

type slotRepo struct {
	db *gorm.DB
}

// NewSlotRepo creates a SlotRepository.
func NewSlotRepo(db *gorm.DB) SlotRepository {
	return &slotRepo{db: db}
}

func (r *slotRepo) Create(ctx context.Context, slot *model.Slot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *slotRepo) GetByID(ctx context.Context, id string) (*model.Slot, error) {
	var slot model.Slot
	err := r.db.WithContext(ctx).
		Preload("DisabledWeeks").
		Preload("DurationOverrides").
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepo) ListByTimetable(ctx context.Context, timetableID string) ([]model.Slot, error) {
	var slots []model.Slot
	err := r.db.WithContext(ctx).
		Preload("DisabledWeeks").
		Preload("DurationOverrides").
		Where("timetable_id = ?", timetableID).
		Order("start_time ASC, end_time ASC, created_at ASC").
		Find(&slots).Error
	return slots, err
}

func (r *slotRepo) ListEquivalent(ctx context.Context, timetableID, day, startTime, endTime, excludeID string) ([]model.Slot, error) {
	var slots []model.Slot
	db := r.db.WithContext(ctx).
		Where("timetable_id = ? AND day = ? AND start_time = ? AND end_time = ?",
			timetableID, day, startTime, endTime)
	if excludeID != "" {
		db = db.Where("slot_id <> ?", excludeID)
	}
	err := db.Find(&slots).Error
	return slots, err
}

func (r *slotRepo) Update(ctx context.Context, slot *model.Slot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *slotRepo) SetDisabled(ctx context.Context, slotID string, disabled bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Slot{}).
		Where("slot_id = ?", slotID).
		Update("disabled", disabled).Error
}

func (r *slotRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		Delete(&model.Slot{}).Error
}
