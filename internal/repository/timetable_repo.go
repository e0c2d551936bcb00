package repository

import (
	"context"

	"gorm.io/gorm"

	"slotboard/backend/internal/model"
)

// TimetableRepository timetable data access.
type TimetableRepository interface {
	Create(ctx context.Context, timetable *model.Timetable) error
	GetByID(ctx context.Context, id string) (*model.Timetable, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Timetable, error)
	Update(ctx context.Context, timetable *model.Timetable) error
	// Delete removes the timetable; slots, overrides, classes and
	// assignments cascade at the database level.
	Delete(ctx context.Context, id string) error
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo creates a TimetableRepository.
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) Create(ctx context.Context, timetable *model.Timetable) error {
	return r.db.WithContext(ctx).Create(timetable).Error
}

func (r *timetableRepo) GetByID(ctx context.Context, id string) (*model.Timetable, error) {
	var t model.Timetable
	err := r.db.WithContext(ctx).Where("timetable_id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *timetableRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Timetable, error) {
	var list []model.Timetable
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *timetableRepo) Update(ctx context.Context, timetable *model.Timetable) error {
	return r.db.WithContext(ctx).Save(timetable).Error
}

func (r *timetableRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("timetable_id = ?", id).
		Delete(&model.Timetable{}).Error
}
