package model

import "time"

// Slot is one recurring weekly time block, maps to slots
//
// Two slots with the same timetable, day, start and end time are
// recurrence-equivalent: the user sees them as one repeating block even
// though each is a distinct row, and the bulk disable/enable operations
// treat them as a unit.
type Slot struct {
	SlotID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	TimetableID string `gorm:"type:uuid;not null"                             json:"timetable_id"`
	Day         string `gorm:"type:varchar(10);not null"                      json:"day"`        // lowercase weekday name
	StartTime   string `gorm:"type:varchar(5);not null"                       json:"start_time"` // "HH:MM"
	EndTime     string `gorm:"type:varchar(5);not null"                       json:"end_time"`   // start < end
	Disabled    bool   `gorm:"not null;default:false"                         json:"disabled"`   // always-disabled flag
	OwnerID     string `gorm:"type:uuid;not null"                             json:"owner_id"`
	BaseModel

	// associations
	DisabledWeeks     []DisabledSlot         `gorm:"foreignKey:SlotID" json:"disabled_weeks,omitempty"`
	DurationOverrides []SlotDurationOverride `gorm:"foreignKey:SlotID" json:"duration_overrides,omitempty"`
}

// TableName sets the table name.
func (Slot) TableName() string { return "slots" }

// EquivalentTo reports recurrence equivalence with another slot.
func (s *Slot) EquivalentTo(o *Slot) bool {
	return s.TimetableID == o.TimetableID &&
		s.Day == o.Day &&
		s.StartTime == o.StartTime &&
		s.EndTime == o.EndTime
}

// DisabledSlot suppresses one slot for exactly one calendar week, maps
// to disabled_slots. DisableDate is normalized to the week's start day.
type DisabledSlot struct {
	DisabledSlotID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"disabled_slot_id"`
	SlotID         string    `gorm:"type:uuid;not null"                             json:"slot_id"`
	DisableDate    time.Time `gorm:"type:date;not null"                             json:"disable_date"`
	OwnerID        string    `gorm:"type:uuid;not null"                             json:"owner_id"`
	BaseModel
}

// TableName sets the table name.
func (DisabledSlot) TableName() string { return "disabled_slots" }

// SlotDurationOverride replaces a slot's start/end time for one ISO
// (year, week) without touching its defaults, maps to slot_duration_overrides.
// At most one per (slot, year, week); writes replace by key.
type SlotDurationOverride struct {
	OverrideID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"override_id"`
	SlotID     string `gorm:"type:uuid;not null"                             json:"slot_id"`
	Year       int    `gorm:"type:smallint;not null"                         json:"year"`
	WeekNumber int    `gorm:"type:smallint;not null"                         json:"week_number"`
	StartTime  string `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime    string `gorm:"type:varchar(5);not null"                       json:"end_time"`
	OwnerID    string `gorm:"type:uuid;not null"                             json:"owner_id"`
	BaseModel
}

// TableName sets the table name.
func (SlotDurationOverride) TableName() string { return "slot_duration_overrides" }
