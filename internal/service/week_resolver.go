package service

import (
	"time"

	"slotboard/backend/internal/model"
	"slotboard/backend/pkg/timeutil"
)

// ── week resolution ──────────────────────────────────────────
//
// The functions in this file are pure: given the loaded records and an
// explicit target week they always produce the same output, with no
// wall-clock dependency. The read path re-runs them wholesale whenever
// underlying records change instead of patching incrementally.
// ─────────────────────────────────────────────────────────────

// WeekRef identifies one concrete target week: the week-start date used
// for disabled-week range checks, plus the ISO (year, week) pair that
// keys duration overrides and assignments.
type WeekRef struct {
	Start time.Time
	Year  int
	Week  int
}

// NewWeekRef derives the week containing date. The week-start day is
// display configuration; the persisted keys are always ISO.
func NewWeekRef(date time.Time, startDay time.Weekday) WeekRef {
	year, week := timeutil.ISOYearWeek(date)
	return WeekRef{
		Start: timeutil.WeekStart(date, startDay),
		Year:  year,
		Week:  week,
	}
}

// EffectiveSlot is one slot resolved for one concrete week.
type EffectiveSlot struct {
	Slot      *model.Slot
	StartTime string
	EndTime   string
	// Disabled is the slot's permanent flag OR'd with any disabled-week
	// override falling inside the target week. A permanently disabled
	// slot cannot be re-enabled for a single week.
	Disabled           bool
	DurationOverridden bool
	// ExtraOverrides counts duration-override rows beyond the one that
	// matched the key. The key is unique by construction, so a non-zero
	// value is a data-integrity anomaly the caller should log.
	ExtraOverrides int
}

// ResolveSlot applies the slot's override records for the target week.
// The slot's DisabledWeeks and DurationOverrides children must be loaded.
func ResolveSlot(slot *model.Slot, week WeekRef) EffectiveSlot {
	eff := EffectiveSlot{
		Slot:      slot,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Disabled:  slot.Disabled,
	}

	// Duration override: exact (year, week) key match. If legacy data
	// holds several rows for the key, the newest one wins.
	var matched *model.SlotDurationOverride
	for i := range slot.DurationOverrides {
		o := &slot.DurationOverrides[i]
		if o.Year != week.Year || o.WeekNumber != week.Week {
			continue
		}
		if matched == nil {
			matched = o
			continue
		}
		eff.ExtraOverrides++
		if !o.CreatedAt.Before(matched.CreatedAt) {
			matched = o
		}
	}
	if matched != nil {
		eff.StartTime = matched.StartTime
		eff.EndTime = matched.EndTime
		eff.DurationOverridden = true
	}

	// Disabled-week override: any row whose normalized date falls within
	// [weekStart, weekStart+7d). Duplicate rows are redundant, not
	// contradictory.
	if !eff.Disabled {
		weekEnd := week.Start.AddDate(0, 0, 7)
		for i := range slot.DisabledWeeks {
			d := slot.DisabledWeeks[i].DisableDate
			if !d.Before(week.Start) && d.Before(weekEnd) {
				eff.Disabled = true
				break
			}
		}
	}

	return eff
}

// ── assignment resolution ──

// VisibleAssignments filters one slot's assignments for the target week:
// matching slot, matching (year, week), not hidden.
func VisibleAssignments(assignments []model.SlotClass, slotID string, week WeekRef) []model.SlotClass {
	var out []model.SlotClass
	for _, a := range assignments {
		if a.SlotID != slotID || a.Year != week.Year || a.WeekNumber != week.Week || a.Hidden {
			continue
		}
		out = append(out, a)
	}
	return out
}

// DisplayText resolves an assignment's text: its own override when
// non-empty, else the class default, else empty.
func DisplayText(a *model.SlotClass) string {
	if a.Text != nil && *a.Text != "" {
		return *a.Text
	}
	if a.Class != nil {
		return a.Class.DefaultText
	}
	return ""
}

// AvailableClasses returns the classes that can still be added to a slot
// in the target week: not already visibly assigned to that slot+week, and
// not restricted to a different week. The same class may sit in several
// slots of one week.
func AvailableClasses(classes []model.Class, assignments []model.SlotClass, slotID string, week WeekRef) []model.Class {
	assigned := make(map[string]bool)
	for _, a := range VisibleAssignments(assignments, slotID, week) {
		assigned[a.ClassID] = true
	}

	var out []model.Class
	for _, c := range classes {
		if assigned[c.ClassID] {
			continue
		}
		if year, wk, ok := (&c).RestrictedToWeek(); ok && (year != week.Year || wk != week.Week) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SeedText finds the text override to carry into a new assignment of a
// class: a visible, non-empty override of the same class elsewhere in the
// same week. Returns nil when the new assignment should start blank.
func SeedText(assignments []model.SlotClass, classID string, week WeekRef) *string {
	for _, a := range assignments {
		if a.ClassID != classID || a.Year != week.Year || a.WeekNumber != week.Week || a.Hidden {
			continue
		}
		if a.Text != nil && *a.Text != "" {
			text := *a.Text
			return &text
		}
	}
	return nil
}
