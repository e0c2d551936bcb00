package model

// Class is a subject/activity defined independently of any slot, maps
// to classes. When WeekNumber and Year are set the class is only
// available in that single ISO week.
type Class struct {
	ClassID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	TimetableID string `gorm:"type:uuid;not null"                             json:"timetable_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	BgColor     string `gorm:"type:varchar(20);not null"                      json:"bg_color"`
	TextColor   string `gorm:"type:varchar(20);not null"                      json:"text_color"`
	IconName    string `gorm:"type:varchar(50);not null;default:''"           json:"icon_name"`
	DefaultText string `gorm:"type:text;not null;default:''"                  json:"default_text"`
	WeekNumber  *int   `gorm:"type:smallint"                                  json:"week_number,omitempty"`
	Year        *int   `gorm:"type:smallint"                                  json:"year,omitempty"`
	OwnerID     string `gorm:"type:uuid;not null"                             json:"owner_id"`
	BaseModel
}

// TableName sets the table name.
func (Class) TableName() string { return "classes" }

// RestrictedToWeek reports whether the class is pinned to a single week,
// and if so which one.
func (c *Class) RestrictedToWeek() (year, week int, ok bool) {
	if c.WeekNumber == nil || c.Year == nil {
		return 0, 0, false
	}
	return *c.Year, *c.WeekNumber, true
}

// SlotClass binds one class to one slot for one ISO (year, week), maps
// to slot_classes ("assignments"). Text, when set, overrides the class's
// DefaultText for this week only.
type SlotClass struct {
	SlotClassID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_class_id"`
	TimetableID string  `gorm:"type:uuid;not null"                             json:"timetable_id"`
	SlotID      string  `gorm:"type:uuid;not null"                             json:"slot_id"`
	ClassID     string  `gorm:"type:uuid;not null"                             json:"class_id"`
	Year        int     `gorm:"type:smallint;not null"                         json:"year"`
	WeekNumber  int     `gorm:"type:smallint;not null"                         json:"week_number"`
	Size        string  `gorm:"type:varchar(10);not null;default:'whole'"      json:"size"` // whole | split
	Text        *string `gorm:"type:text"                                      json:"text,omitempty"`
	Complete    bool    `gorm:"not null;default:false"                         json:"complete"`
	Hidden      bool    `gorm:"not null;default:false"                         json:"hidden"`
	OwnerID     string  `gorm:"type:uuid;not null"                             json:"owner_id"`
	BaseModel

	// associations
	Class *Class `gorm:"foreignKey:ClassID;references:ClassID" json:"class,omitempty"`
	Slot  *Slot  `gorm:"foreignKey:SlotID;references:SlotID"   json:"slot,omitempty"`
}

// TableName sets the table name.
func (SlotClass) TableName() string { return "slot_classes" }
