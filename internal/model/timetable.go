package model

// Timetable is the schedule template: a named set of active weekdays plus
// the valid time-of-day window, maps to timetables
type Timetable struct {
	TimetableID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"timetable_id"`
	Name        string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Days        StringArray `gorm:"type:text[];not null"                           json:"days"` // lowercase weekday names
	StartTime   int         `gorm:"type:smallint;not null"                         json:"start_time"` // minutes from midnight
	EndTime     int         `gorm:"type:smallint;not null"                         json:"end_time"`   // start_time < end_time
	OwnerID     string      `gorm:"type:uuid;not null"                             json:"owner_id"`
	BaseModel

	// associations
	Slots   []Slot  `gorm:"foreignKey:TimetableID" json:"slots,omitempty"`
	Classes []Class `gorm:"foreignKey:TimetableID" json:"classes,omitempty"`
}

// TableName sets the table name.
func (Timetable) TableName() string { return "timetables" }
