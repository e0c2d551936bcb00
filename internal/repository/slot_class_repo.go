package repository

import (
	"context"

	"gorm.io/gorm"

	"slotboard/backend/internal/model"
)

// SlotClassRepository assignment data access.
type SlotClassRepository interface {
	Create(ctx context.Context, sc *model.SlotClass) error
	GetByID(ctx context.Context, id string) (*model.SlotClass, error)
	// ListByTimetableWeek returns all assignments of one timetable for one
	// ISO week, hidden included, with the class association preloaded.
	ListByTimetableWeek(ctx context.Context, timetableID string, year, weekNumber int) ([]model.SlotClass, error)
	Update(ctx context.Context, sc *model.SlotClass) error
	Delete(ctx context.Context, id string) error
}

type slotClassRepo struct {
	db *gorm.DB
}

// NewSlotClassRepo creates a SlotClassRepository.
func NewSlotClassRepo(db *gorm.DB) SlotClassRepository {
	return &slotClassRepo{db: db}
}

func (r *slotClassRepo) Create(ctx context.Context, sc *model.SlotClass) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *slotClassRepo) GetByID(ctx context.Context, id string) (*model.SlotClass, error) {
	var sc model.SlotClass
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("slot_class_id = ?", id).
		First(&sc).Error
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *slotClassRepo) ListByTimetableWeek(ctx context.Context, timetableID string, year, weekNumber int) ([]model.SlotClass, error) {
	var list []model.SlotClass
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("timetable_id = ? AND year = ? AND week_number = ?", timetableID, year, weekNumber).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *slotClassRepo) Update(ctx context.Context, sc *model.SlotClass) error {
	return r.db.WithContext(ctx).Save(sc).Error
}

func (r *slotClassRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("slot_class_id = ?", id).
		Delete(&model.SlotClass{}).Error
}
