package repository

import "gorm.io/gorm"

// Repository aggregates every entity repository.
type Repository struct {
	User             UserRepository
	Timetable        TimetableRepository
	Slot             SlotRepository
	DisabledSlot     DisabledSlotRepository
	DurationOverride DurationOverrideRepository
	Class            ClassRepository
	SlotClass        SlotClassRepository
}

// NewRepository wires the aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:             NewUserRepo(db),
		Timetable:        NewTimetableRepo(db),
		Slot:             NewSlotRepo(db),
		DisabledSlot:     NewDisabledSlotRepo(db),
		DurationOverride: NewDurationOverrideRepo(db),
		Class:            NewClassRepo(db),
		SlotClass:        NewSlotClassRepo(db),
	}
}
