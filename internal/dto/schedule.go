package dto

// ── resolved schedule DTOs ──

// EffectiveSlotResponse is one slot as it appears in a concrete week
// after overrides are applied.
type EffectiveSlotResponse struct {
	SlotID    string `json:"slot_id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"` // effective "HH:MM"
	EndTime   string `json:"end_time"`
	// Disabled ORs the slot's permanent flag with a week-level override.
	Disabled bool `json:"disabled"`
	// DurationOverridden marks that this week's times differ from the
	// slot's defaults.
	DurationOverridden bool                 `json:"duration_overridden"`
	Classes            []AssignmentResponse `json:"classes"`
}

// DayScheduleResponse one weekday of the resolved week.
type DayScheduleResponse struct {
	Day   string                  `json:"day"`
	Date  string                  `json:"date"` // "YYYY-MM-DD"
	Slots []EffectiveSlotResponse `json:"slots"`
}

// WeekScheduleResponse the full resolved schedule of one ISO week.
type WeekScheduleResponse struct {
	TimetableID string                `json:"timetable_id"`
	Name        string                `json:"name"`
	Year        int                   `json:"year"`
	WeekNumber  int                   `json:"week_number"`
	WeekStart   string                `json:"week_start"` // "YYYY-MM-DD"
	StartTime   int                   `json:"start_time"` // display window, minutes
	EndTime     int                   `json:"end_time"`
	Days        []DayScheduleResponse `json:"days"`
}
