package dto

// ── slot DTOs ──

// CreateSlotsRequest creates one slot per selected weekday, all sharing
// the same default start/end time.
type CreateSlotsRequest struct {
	TimetableID string   `json:"timetable_id" binding:"required,uuid"`
	Days        []string `json:"days"         binding:"required,min=1,max=7"`
	StartTime   string   `json:"start_time"   binding:"required"` // "HH:MM"
	EndTime     string   `json:"end_time"     binding:"required"` // "HH:MM"
	// Date identifies the week the user was viewing ("YYYY-MM-DD").
	Date string `json:"date" binding:"required"`

	// DisabledAlways marks the new slots permanently disabled.
	DisabledAlways bool `json:"disabled_always"`
	// DisabledThisWeek additionally disables the new slots for Date's week.
	DisabledThisWeek bool `json:"disabled_this_week"`
	// DisableFuture also disables every pre-existing recurrence-equivalent
	// slot on each selected day.
	DisableFuture bool `json:"disable_future"`
}

// SaveSlotRequest is one save of the slot edit session. Exactly one of
// the DisableFuture / EnableFuture / week-level paths may be active;
// conflicting flags are rejected.
type SaveSlotRequest struct {
	Day       *string `json:"day"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	// Date identifies the target week ("YYYY-MM-DD").
	Date string `json:"date" binding:"required"`

	// DisabledAlways updates the slot's permanent disabled flag.
	DisabledAlways *bool `json:"disabled_always"`
	// ThisWeekOnly stores Start/End as a duration override for Date's week
	// instead of changing the slot defaults.
	ThisWeekOnly bool `json:"this_week_only"`
	// DisabledThisWeek reconciles the week-level disabled override:
	// created when toggled on, all matching rows removed when toggled off.
	DisabledThisWeek *bool `json:"disabled_this_week"`
	// DisableFuture disables this slot and every recurrence-equivalent one.
	DisableFuture bool `json:"disable_future"`
	// EnableFuture re-enables this slot and every recurrence-equivalent
	// one and deletes all their week-level disabled overrides.
	EnableFuture bool `json:"enable_future"`
}

// SlotResponse slot info.
type SlotResponse struct {
	ID          string `json:"id"`
	TimetableID string `json:"timetable_id"`
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Disabled    bool   `json:"disabled"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// SaveSlotResponse reports what a save touched.
type SaveSlotResponse struct {
	Slot SlotResponse `json:"slot"`
	// UpdatedSlotIDs lists every slot changed by a bulk path, the edited
	// slot included.
	UpdatedSlotIDs []string `json:"updated_slot_ids,omitempty"`
}
