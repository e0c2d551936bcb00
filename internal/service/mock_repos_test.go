package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"slotboard/backend/internal/model"
	"slotboard/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	timetables map[string]*model.Timetable
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{timetables: make(map[string]*model.Timetable)}
}

func (m *mockTimetableRepo) Create(_ context.Context, t *model.Timetable) error {
	if t.TimetableID == "" {
		t.TimetableID = "tt-" + t.Name
	}
	m.timetables[t.TimetableID] = t
	return nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id string) (*model.Timetable, error) {
	if t, ok := m.timetables[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Timetable, error) {
	var result []model.Timetable
	for _, t := range m.timetables {
		if t.OwnerID == ownerID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTimetableRepo) Update(_ context.Context, t *model.Timetable) error {
	m.timetables[t.TimetableID] = t
	return nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, id string) error {
	delete(m.timetables, id)
	return nil
}

// ── Mock SlotRepository ──
//
// Reads attach the disabled-week and duration-override children the way
// the gorm preloads do, so the resolvers see consistent data.

type mockSlotRepo struct {
	slots     map[string]*model.Slot
	disabled  *mockDisabledSlotRepo
	overrides *mockDurationOverrideRepo
	seq       int
}

func (m *mockSlotRepo) Create(_ context.Context, slot *model.Slot) error {
	if slot.SlotID == "" {
		m.seq++
		slot.SlotID = fmt.Sprintf("slot-%d", m.seq)
	}
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id string) (*model.Slot, error) {
	s, ok := m.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := *s
	m.attachChildren(&loaded)
	return &loaded, nil
}

func (m *mockSlotRepo) ListByTimetable(_ context.Context, timetableID string) ([]model.Slot, error) {
	var result []model.Slot
	for _, s := range m.slots {
		if s.TimetableID != timetableID {
			continue
		}
		loaded := *s
		m.attachChildren(&loaded)
		result = append(result, loaded)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].EndTime < result[j].EndTime
	})
	return result, nil
}

func (m *mockSlotRepo) ListEquivalent(_ context.Context, timetableID, day, startTime, endTime, excludeID string) ([]model.Slot, error) {
	var result []model.Slot
	for _, s := range m.slots {
		if s.TimetableID != timetableID || s.Day != day ||
			s.StartTime != startTime || s.EndTime != endTime {
			continue
		}
		if excludeID != "" && s.SlotID == excludeID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSlotRepo) Update(_ context.Context, slot *model.Slot) error {
	stored := *slot
	stored.DisabledWeeks = nil
	stored.DurationOverrides = nil
	m.slots[slot.SlotID] = &stored
	return nil
}

func (m *mockSlotRepo) SetDisabled(_ context.Context, slotID string, disabled bool) error {
	s, ok := m.slots[slotID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Disabled = disabled
	return nil
}

func (m *mockSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

func (m *mockSlotRepo) attachChildren(slot *model.Slot) {
	slot.DisabledWeeks = nil
	slot.DurationOverrides = nil
	for _, d := range m.disabled.rows {
		if d.SlotID == slot.SlotID {
			slot.DisabledWeeks = append(slot.DisabledWeeks, *d)
		}
	}
	for _, o := range m.overrides.rows {
		if o.SlotID == slot.SlotID {
			slot.DurationOverrides = append(slot.DurationOverrides, *o)
		}
	}
}

// ── Mock DisabledSlotRepository ──

type mockDisabledSlotRepo struct {
	rows map[string]*model.DisabledSlot
	seq  int
}

func newMockDisabledSlotRepo() *mockDisabledSlotRepo {
	return &mockDisabledSlotRepo{rows: make(map[string]*model.DisabledSlot)}
}

func (m *mockDisabledSlotRepo) Create(_ context.Context, d *model.DisabledSlot) error {
	if d.DisabledSlotID == "" {
		m.seq++
		d.DisabledSlotID = fmt.Sprintf("ds-%d", m.seq)
	}
	m.rows[d.DisabledSlotID] = d
	return nil
}

func (m *mockDisabledSlotRepo) ListBySlot(_ context.Context, slotID string) ([]model.DisabledSlot, error) {
	var result []model.DisabledSlot
	for _, d := range m.rows {
		if d.SlotID == slotID {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDisabledSlotRepo) ListBySlotWeek(_ context.Context, slotID string, weekStart time.Time) ([]model.DisabledSlot, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)
	var result []model.DisabledSlot
	for _, d := range m.rows {
		if d.SlotID == slotID && !d.DisableDate.Before(weekStart) && d.DisableDate.Before(weekEnd) {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDisabledSlotRepo) DeleteBySlotWeek(_ context.Context, slotID string, weekStart time.Time) error {
	weekEnd := weekStart.AddDate(0, 0, 7)
	for id, d := range m.rows {
		if d.SlotID == slotID && !d.DisableDate.Before(weekStart) && d.DisableDate.Before(weekEnd) {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *mockDisabledSlotRepo) DeleteBySlot(_ context.Context, slotID string) error {
	for id, d := range m.rows {
		if d.SlotID == slotID {
			delete(m.rows, id)
		}
	}
	return nil
}

// ── Mock DurationOverrideRepository ──

type mockDurationOverrideRepo struct {
	rows map[string]*model.SlotDurationOverride
	seq  int
}

func newMockDurationOverrideRepo() *mockDurationOverrideRepo {
	return &mockDurationOverrideRepo{rows: make(map[string]*model.SlotDurationOverride)}
}

func (m *mockDurationOverrideRepo) ListBySlot(_ context.Context, slotID string) ([]model.SlotDurationOverride, error) {
	var result []model.SlotDurationOverride
	for _, o := range m.rows {
		if o.SlotID == slotID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockDurationOverrideRepo) Replace(ctx context.Context, o *model.SlotDurationOverride) error {
	if err := m.DeleteByKey(ctx, o.SlotID, o.Year, o.WeekNumber); err != nil {
		return err
	}
	if o.OverrideID == "" {
		m.seq++
		o.OverrideID = fmt.Sprintf("ov-%d", m.seq)
	}
	m.rows[o.OverrideID] = o
	return nil
}

func (m *mockDurationOverrideRepo) DeleteByKey(_ context.Context, slotID string, year, weekNumber int) error {
	for id, o := range m.rows {
		if o.SlotID == slotID && o.Year == year && o.WeekNumber == weekNumber {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *mockDurationOverrideRepo) DeleteBySlot(_ context.Context, slotID string) error {
	for id, o := range m.rows {
		if o.SlotID == slotID {
			delete(m.rows, id)
		}
	}
	return nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes map[string]*model.Class
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class)}
}

func (m *mockClassRepo) Create(_ context.Context, class *model.Class) error {
	if class.ClassID == "" {
		class.ClassID = "class-" + class.Name
	}
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) ListByTimetable(_ context.Context, timetableID string) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		if c.TimetableID == timetableID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockClassRepo) Update(_ context.Context, class *model.Class) error {
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

// ── Mock SlotClassRepository ──

type mockSlotClassRepo struct {
	rows    map[string]*model.SlotClass
	classes *mockClassRepo
	seq     int
}

func (m *mockSlotClassRepo) Create(_ context.Context, sc *model.SlotClass) error {
	if sc.SlotClassID == "" {
		m.seq++
		sc.SlotClassID = fmt.Sprintf("sc-%d", m.seq)
	}
	stored := *sc
	stored.Class = nil
	stored.Slot = nil
	m.rows[sc.SlotClassID] = &stored
	return nil
}

func (m *mockSlotClassRepo) GetByID(_ context.Context, id string) (*model.SlotClass, error) {
	sc, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := *sc
	loaded.Class = m.classes.classes[sc.ClassID]
	return &loaded, nil
}

func (m *mockSlotClassRepo) ListByTimetableWeek(_ context.Context, timetableID string, year, weekNumber int) ([]model.SlotClass, error) {
	var result []model.SlotClass
	for _, sc := range m.rows {
		if sc.TimetableID != timetableID || sc.Year != year || sc.WeekNumber != weekNumber {
			continue
		}
		loaded := *sc
		loaded.Class = m.classes.classes[sc.ClassID]
		result = append(result, loaded)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SlotClassID < result[j].SlotClassID })
	return result, nil
}

func (m *mockSlotClassRepo) Update(_ context.Context, sc *model.SlotClass) error {
	stored := *sc
	stored.Class = nil
	stored.Slot = nil
	m.rows[sc.SlotClassID] = &stored
	return nil
}

func (m *mockSlotClassRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

// ── Aggregate setup ──

type testMocks struct {
	users      *mockUserRepo
	timetables *mockTimetableRepo
	slots      *mockSlotRepo
	disabled   *mockDisabledSlotRepo
	overrides  *mockDurationOverrideRepo
	classes    *mockClassRepo
	slotClass  *mockSlotClassRepo
}

func newTestRepository() (*repository.Repository, *testMocks) {
	disabled := newMockDisabledSlotRepo()
	overrides := newMockDurationOverrideRepo()
	classes := newMockClassRepo()
	m := &testMocks{
		users:      newMockUserRepo(),
		timetables: newMockTimetableRepo(),
		slots:      &mockSlotRepo{slots: make(map[string]*model.Slot), disabled: disabled, overrides: overrides},
		disabled:   disabled,
		overrides:  overrides,
		classes:    classes,
		slotClass:  &mockSlotClassRepo{rows: make(map[string]*model.SlotClass), classes: classes},
	}
	repo := &repository.Repository{
		User:             m.users,
		Timetable:        m.timetables,
		Slot:             m.slots,
		DisabledSlot:     m.disabled,
		DurationOverride: m.overrides,
		Class:            m.classes,
		SlotClass:        m.slotClass,
	}
	return repo, m
}
