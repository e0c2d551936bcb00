package service

import (
	"testing"
	"time"

	"slotboard/backend/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Week 10 of 2024 starts Monday 2024-03-04, week 11 on 2024-03-11.
func week10() WeekRef { return NewWeekRef(date(2024, time.March, 6), time.Monday) }
func week11() WeekRef { return NewWeekRef(date(2024, time.March, 13), time.Monday) }

func TestNewWeekRef(t *testing.T) {
	w := week10()
	if w.Year != 2024 || w.Week != 10 {
		t.Errorf("expected 2024-W10, got %d-W%d", w.Year, w.Week)
	}
	if !w.Start.Equal(date(2024, time.March, 4)) {
		t.Errorf("expected week start 2024-03-04, got %s", w.Start)
	}
}

func TestNewWeekRef_SundayStart(t *testing.T) {
	// With a Sunday-start display week, Wednesday 2024-03-06 belongs to
	// the week starting Sunday 2024-03-03, but the ISO key is unchanged.
	w := NewWeekRef(date(2024, time.March, 6), time.Sunday)
	if !w.Start.Equal(date(2024, time.March, 3)) {
		t.Errorf("expected week start 2024-03-03, got %s", w.Start)
	}
	if w.Year != 2024 || w.Week != 10 {
		t.Errorf("expected ISO 2024-W10, got %d-W%d", w.Year, w.Week)
	}
}

func TestResolveSlot_Defaults(t *testing.T) {
	slot := &model.Slot{SlotID: "s1", Day: "monday", StartTime: "09:00", EndTime: "10:00"}

	eff := ResolveSlot(slot, week10())
	if eff.StartTime != "09:00" || eff.EndTime != "10:00" {
		t.Errorf("expected default times, got %s-%s", eff.StartTime, eff.EndTime)
	}
	if eff.Disabled || eff.DurationOverridden {
		t.Error("expected enabled slot without overrides")
	}
}

func TestResolveSlot_DurationOverrideOnlyItsWeek(t *testing.T) {
	slot := &model.Slot{
		SlotID: "s1", Day: "monday", StartTime: "09:00", EndTime: "10:00",
		DurationOverrides: []model.SlotDurationOverride{
			{OverrideID: "o1", SlotID: "s1", Year: 2024, WeekNumber: 10, StartTime: "09:30", EndTime: "10:30"},
		},
	}

	eff := ResolveSlot(slot, week10())
	if eff.StartTime != "09:30" || eff.EndTime != "10:30" {
		t.Errorf("week 10 should use override, got %s-%s", eff.StartTime, eff.EndTime)
	}
	if !eff.DurationOverridden {
		t.Error("expected DurationOverridden in week 10")
	}

	eff = ResolveSlot(slot, week11())
	if eff.StartTime != "09:00" || eff.EndTime != "10:00" {
		t.Errorf("week 11 should use defaults, got %s-%s", eff.StartTime, eff.EndTime)
	}
	if eff.DurationOverridden {
		t.Error("expected defaults in week 11")
	}
}

func TestResolveSlot_DuplicateOverridesNewestWins(t *testing.T) {
	older := time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	slot := &model.Slot{
		SlotID: "s1", Day: "monday", StartTime: "09:00", EndTime: "10:00",
		DurationOverrides: []model.SlotDurationOverride{
			{OverrideID: "o1", SlotID: "s1", Year: 2024, WeekNumber: 10, StartTime: "08:00", EndTime: "09:00",
				BaseModel: model.BaseModel{CreatedAt: older}},
			{OverrideID: "o2", SlotID: "s1", Year: 2024, WeekNumber: 10, StartTime: "11:00", EndTime: "12:00",
				BaseModel: model.BaseModel{CreatedAt: newer}},
		},
	}

	eff := ResolveSlot(slot, week10())
	if eff.StartTime != "11:00" || eff.EndTime != "12:00" {
		t.Errorf("expected newest override to win, got %s-%s", eff.StartTime, eff.EndTime)
	}
	if eff.ExtraOverrides != 1 {
		t.Errorf("expected 1 extra override reported, got %d", eff.ExtraOverrides)
	}
}

func TestResolveSlot_DisabledWeek(t *testing.T) {
	// Week 5 of 2024 starts Monday 2024-01-29.
	slot := &model.Slot{
		SlotID: "s1", Day: "monday", StartTime: "09:00", EndTime: "10:00",
		DisabledWeeks: []model.DisabledSlot{
			{DisabledSlotID: "d1", SlotID: "s1", DisableDate: date(2024, time.January, 29)},
		},
	}

	week5 := NewWeekRef(date(2024, time.February, 1), time.Monday)
	if eff := ResolveSlot(slot, week5); !eff.Disabled {
		t.Error("expected slot disabled in week 5")
	}
	week6 := NewWeekRef(date(2024, time.February, 7), time.Monday)
	if eff := ResolveSlot(slot, week6); eff.Disabled {
		t.Error("expected slot enabled in week 6")
	}
}

func TestResolveSlot_PermanentDisableWins(t *testing.T) {
	slot := &model.Slot{SlotID: "s1", Day: "monday", StartTime: "09:00", EndTime: "10:00", Disabled: true}
	if eff := ResolveSlot(slot, week10()); !eff.Disabled {
		t.Error("permanently disabled slot must resolve disabled in every week")
	}
}

func TestVisibleAssignments_FiltersWeekSlotAndHidden(t *testing.T) {
	assignments := []model.SlotClass{
		{SlotClassID: "a1", SlotID: "s1", ClassID: "c1", Year: 2024, WeekNumber: 10},
		{SlotClassID: "a2", SlotID: "s1", ClassID: "c2", Year: 2024, WeekNumber: 10, Hidden: true},
		{SlotClassID: "a3", SlotID: "s1", ClassID: "c3", Year: 2024, WeekNumber: 11},
		{SlotClassID: "a4", SlotID: "s2", ClassID: "c4", Year: 2024, WeekNumber: 10},
	}

	visible := VisibleAssignments(assignments, "s1", week10())
	if len(visible) != 1 || visible[0].SlotClassID != "a1" {
		t.Errorf("expected only a1 visible, got %+v", visible)
	}
}

func TestDisplayText_Fallback(t *testing.T) {
	class := &model.Class{ClassID: "c1", DefaultText: "default note"}
	override := "own note"
	empty := ""

	cases := []struct {
		name string
		a    model.SlotClass
		want string
	}{
		{"own text wins", model.SlotClass{Text: &override, Class: class}, "own note"},
		{"empty text falls back", model.SlotClass{Text: &empty, Class: class}, "default note"},
		{"nil text falls back", model.SlotClass{Class: class}, "default note"},
		{"no class no text", model.SlotClass{}, ""},
	}
	for _, tc := range cases {
		if got := DisplayText(&tc.a); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestAvailableClasses(t *testing.T) {
	wk10, yr := 10, 2024
	classes := []model.Class{
		{ClassID: "c1", Name: "Maths"},
		{ClassID: "c2", Name: "Art"},
		{ClassID: "c3", Name: "Assembly", Year: &yr, WeekNumber: &wk10},
	}
	assignments := []model.SlotClass{
		{SlotClassID: "a1", SlotID: "s1", ClassID: "c1", Year: 2024, WeekNumber: 10},
	}

	got := AvailableClasses(classes, assignments, "s1", week10())
	if len(got) != 2 || got[0].ClassID != "c2" || got[1].ClassID != "c3" {
		t.Errorf("week 10: expected c2 and c3 available, got %+v", got)
	}

	// In week 11 the week-restricted class drops out, and c1 is free again.
	got = AvailableClasses(classes, assignments, "s1", week11())
	if len(got) != 2 || got[0].ClassID != "c1" || got[1].ClassID != "c2" {
		t.Errorf("week 11: expected c1 and c2 available, got %+v", got)
	}
}

func TestAvailableClasses_HiddenAssignmentFrees(t *testing.T) {
	classes := []model.Class{{ClassID: "c1", Name: "Maths"}}
	assignments := []model.SlotClass{
		{SlotClassID: "a1", SlotID: "s1", ClassID: "c1", Year: 2024, WeekNumber: 10, Hidden: true},
	}

	got := AvailableClasses(classes, assignments, "s1", week10())
	if len(got) != 1 {
		t.Errorf("hidden assignment should not block re-adding, got %+v", got)
	}
}

func TestSeedText(t *testing.T) {
	note := "bring books"
	assignments := []model.SlotClass{
		{SlotClassID: "a1", SlotID: "s1", ClassID: "c1", Year: 2024, WeekNumber: 10, Text: &note},
		{SlotClassID: "a2", SlotID: "s2", ClassID: "c2", Year: 2024, WeekNumber: 10},
	}

	if got := SeedText(assignments, "c1", week10()); got == nil || *got != "bring books" {
		t.Errorf("expected seeded text, got %v", got)
	}
	if got := SeedText(assignments, "c2", week10()); got != nil {
		t.Errorf("class without text should seed nil, got %v", got)
	}
	if got := SeedText(assignments, "c1", week11()); got != nil {
		t.Errorf("other week should seed nil, got %v", got)
	}
}
