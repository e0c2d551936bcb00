package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"slotboard/backend/internal/dto"
	"slotboard/backend/internal/model"
	"slotboard/backend/internal/repository"
	"slotboard/backend/pkg/timeutil"
)

// ── slot business errors ──

var (
	ErrSlotNotFound        = errors.New("slot not found")
	ErrInvalidSlotTimes    = errors.New("slot start must be before slot end")
	ErrDayNotInTimetable   = errors.New("day is not part of the timetable")
	ErrConflictingFlags    = errors.New("conflicting save flags")
	ErrSlotAlreadyDisabled = errors.New("slot is permanently disabled")
)

// SlotService slot business interface.
//
// Save is the write side of the slot edit session: every call picks
// exactly one path (plain field update, this-week duration override,
// week disable/enable, bulk disable/enable across equivalent slots).
// Bulk paths write each record independently; on failure the records
// already written stay written and the first error is returned.
type SlotService interface {
	// Create makes one slot per selected weekday, all sharing the same
	// start/end time.
	Create(ctx context.Context, req *dto.CreateSlotsRequest, ownerID string) ([]dto.SlotResponse, error)
	GetByID(ctx context.Context, id, ownerID string) (*dto.SlotResponse, error)
	Save(ctx context.Context, id string, req *dto.SaveSlotRequest, ownerID string) (*dto.SaveSlotResponse, error)
	// Delete removes the slot with its overrides and assignments.
	Delete(ctx context.Context, id, ownerID string) error
}

type slotService struct {
	repo      *repository.Repository
	cache     ScheduleCache
	weekStart time.Weekday
	logger    *zap.Logger
}

// NewSlotService creates a SlotService.
func NewSlotService(repo *repository.Repository, cache ScheduleCache, weekStart time.Weekday, logger *zap.Logger) SlotService {
	return &slotService{repo: repo, cache: cache, weekStart: weekStart, logger: logger}
}

func (s *slotService) Create(ctx context.Context, req *dto.CreateSlotsRequest, ownerID string) ([]dto.SlotResponse, error) {
	timetable, err := s.ownedTimetable(ctx, req.TimetableID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	week := NewWeekRef(date, s.weekStart)

	days := make([]string, 0, len(req.Days))
	seen := make(map[string]bool, len(req.Days))
	for _, d := range req.Days {
		d = strings.ToLower(d)
		if timeutil.WeekdayIndex(d) < 0 {
			return nil, ErrInvalidDayName
		}
		if !timetable.Days.Contains(d) {
			return nil, ErrDayNotInTimetable
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}

	// Record independence: each day's writes land on their own, the
	// first failure stops the loop with earlier days kept.
	wrote := false
	defer func() {
		if wrote {
			s.invalidate(ctx, timetable.TimetableID)
		}
	}()

	result := make([]dto.SlotResponse, 0, len(days))
	for _, day := range days {
		if req.DisableFuture {
			equivalents, err := s.repo.Slot.ListEquivalent(ctx, timetable.TimetableID, day, req.StartTime, req.EndTime, "")
			if err != nil {
				s.logger.Error("list equivalent slots failed", zap.Error(err))
				return result, err
			}
			for i := range equivalents {
				if equivalents[i].Disabled {
					continue
				}
				if err := s.repo.Slot.SetDisabled(ctx, equivalents[i].SlotID, true); err != nil {
					s.logger.Error("disable equivalent slot failed",
						zap.String("slot_id", equivalents[i].SlotID), zap.Error(err))
					return result, err
				}
				wrote = true
			}
		}

		slot := &model.Slot{
			SlotID:      uuid.New().String(),
			TimetableID: timetable.TimetableID,
			Day:         day,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Disabled:    req.DisabledAlways || req.DisableFuture,
			OwnerID:     ownerID,
		}
		if err := s.repo.Slot.Create(ctx, slot); err != nil {
			s.logger.Error("create slot failed", zap.String("day", day), zap.Error(err))
			return result, err
		}
		wrote = true

		// A week-level disable on top of a permanent one would be
		// redundant; only record it for enabled slots.
		if req.DisabledThisWeek && !slot.Disabled {
			d := &model.DisabledSlot{
				DisabledSlotID: uuid.New().String(),
				SlotID:         slot.SlotID,
				DisableDate:    week.Start,
				OwnerID:        ownerID,
			}
			if err := s.repo.DisabledSlot.Create(ctx, d); err != nil {
				s.logger.Error("create disabled week failed", zap.String("slot_id", slot.SlotID), zap.Error(err))
				return result, err
			}
		}

		result = append(result, *toSlotResponse(slot))
	}

	return result, nil
}

func (s *slotService) GetByID(ctx context.Context, id, ownerID string) (*dto.SlotResponse, error) {
	slot, err := s.ownedSlot(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return toSlotResponse(slot), nil
}

func (s *slotService) Save(ctx context.Context, id string, req *dto.SaveSlotRequest, ownerID string) (*dto.SaveSlotResponse, error) {
	if err := validateSaveFlags(req); err != nil {
		return nil, err
	}

	slot, err := s.ownedSlot(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	week := NewWeekRef(date, s.weekStart)

	wrote := false
	defer func() {
		if wrote {
			s.invalidate(ctx, slot.TimetableID)
		}
	}()

	switch {
	case req.EnableFuture:
		ids, err := s.setEquivalentDisabled(ctx, slot, false, &wrote)
		if err != nil {
			return nil, err
		}
		// Re-enabling the series also clears its week-level overrides,
		// otherwise old disabled weeks would keep shadowing it.
		for _, slotID := range ids {
			if err := s.repo.DisabledSlot.DeleteBySlot(ctx, slotID); err != nil {
				s.logger.Error("clear disabled weeks failed", zap.String("slot_id", slotID), zap.Error(err))
				return nil, err
			}
		}
		slot.Disabled = false
		return &dto.SaveSlotResponse{Slot: *toSlotResponse(slot), UpdatedSlotIDs: ids}, nil

	case req.DisableFuture:
		ids, err := s.setEquivalentDisabled(ctx, slot, true, &wrote)
		if err != nil {
			return nil, err
		}
		slot.Disabled = true
		return &dto.SaveSlotResponse{Slot: *toSlotResponse(slot), UpdatedSlotIDs: ids}, nil
	}

	// ── single-slot path ──

	startTime := slot.StartTime
	endTime := slot.EndTime
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	if req.EndTime != nil {
		endTime = *req.EndTime
	}
	if err := validateTimeRange(startTime, endTime); err != nil {
		return nil, err
	}

	changed := false
	if req.Day != nil {
		day := strings.ToLower(*req.Day)
		if timeutil.WeekdayIndex(day) < 0 {
			return nil, ErrInvalidDayName
		}
		timetable, err := s.ownedTimetable(ctx, slot.TimetableID, ownerID)
		if err != nil {
			return nil, err
		}
		if !timetable.Days.Contains(day) {
			return nil, ErrDayNotInTimetable
		}
		if day != slot.Day {
			slot.Day = day
			changed = true
		}
	}

	if req.ThisWeekOnly {
		// The new times apply to the target week only; the slot's own
		// defaults stay untouched. Replace keeps (slot, year, week) unique.
		if req.StartTime != nil || req.EndTime != nil {
			override := &model.SlotDurationOverride{
				OverrideID: uuid.New().String(),
				SlotID:     slot.SlotID,
				Year:       week.Year,
				WeekNumber: week.Week,
				StartTime:  startTime,
				EndTime:    endTime,
				OwnerID:    ownerID,
			}
			if err := s.repo.DurationOverride.Replace(ctx, override); err != nil {
				s.logger.Error("replace duration override failed", zap.String("slot_id", slot.SlotID), zap.Error(err))
				return nil, err
			}
			wrote = true
		}
	} else {
		if startTime != slot.StartTime || endTime != slot.EndTime {
			slot.StartTime = startTime
			slot.EndTime = endTime
			changed = true
		}
	}

	if req.DisabledAlways != nil && *req.DisabledAlways != slot.Disabled {
		slot.Disabled = *req.DisabledAlways
		changed = true
	}

	if changed {
		if err := s.repo.Slot.Update(ctx, slot); err != nil {
			s.logger.Error("update slot failed", zap.String("slot_id", slot.SlotID), zap.Error(err))
			return nil, err
		}
		wrote = true
	}

	if req.DisabledThisWeek != nil {
		if err := s.reconcileWeekDisable(ctx, slot, week, *req.DisabledThisWeek, ownerID, &wrote); err != nil {
			return nil, err
		}
	}

	return &dto.SaveSlotResponse{Slot: *toSlotResponse(slot)}, nil
}

func (s *slotService) Delete(ctx context.Context, id, ownerID string) error {
	slot, err := s.ownedSlot(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.repo.Slot.Delete(ctx, id); err != nil {
		s.logger.Error("delete slot failed", zap.String("slot_id", id), zap.Error(err))
		return err
	}

	s.invalidate(ctx, slot.TimetableID)
	return nil
}

// ── helpers ──

// setEquivalentDisabled flips the permanent disabled flag on the slot
// and every recurrence-equivalent slot. Returns all touched IDs, the
// edited slot first.
func (s *slotService) setEquivalentDisabled(ctx context.Context, slot *model.Slot, disabled bool, wrote *bool) ([]string, error) {
	equivalents, err := s.repo.Slot.ListEquivalent(ctx, slot.TimetableID, slot.Day, slot.StartTime, slot.EndTime, slot.SlotID)
	if err != nil {
		s.logger.Error("list equivalent slots failed", zap.String("slot_id", slot.SlotID), zap.Error(err))
		return nil, err
	}

	ids := []string{slot.SlotID}
	if err := s.repo.Slot.SetDisabled(ctx, slot.SlotID, disabled); err != nil {
		s.logger.Error("set slot disabled failed", zap.String("slot_id", slot.SlotID), zap.Error(err))
		return nil, err
	}
	*wrote = true

	for i := range equivalents {
		if err := s.repo.Slot.SetDisabled(ctx, equivalents[i].SlotID, disabled); err != nil {
			s.logger.Error("set slot disabled failed",
				zap.String("slot_id", equivalents[i].SlotID), zap.Error(err))
			return nil, err
		}
		ids = append(ids, equivalents[i].SlotID)
	}
	return ids, nil
}

// reconcileWeekDisable brings the week-level disabled override in line
// with the requested state. Disabling an already permanently disabled
// slot is rejected rather than recorded.
func (s *slotService) reconcileWeekDisable(ctx context.Context, slot *model.Slot, week WeekRef, disabled bool, ownerID string, wrote *bool) error {
	if !disabled {
		if err := s.repo.DisabledSlot.DeleteBySlotWeek(ctx, slot.SlotID, week.Start); err != nil {
			s.logger.Error("delete disabled week failed", zap.String("slot_id", slot.SlotID), zap.Error(err))
			return err
		}
		*wrote = true
		return nil
	}

	if slot.Disabled {
		return ErrSlotAlreadyDisabled
	}

	existing, err := s.repo.DisabledSlot.ListBySlotWeek(ctx, slot.SlotID, week.Start)
	if err != nil {
		s.logger.Error("list disabled weeks failed", zap.String("slot_id", slot.SlotID), zap.Error(err))
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	d := &model.DisabledSlot{
		DisabledSlotID: uuid.New().String(),
		SlotID:         slot.SlotID,
		DisableDate:    week.Start,
		OwnerID:        ownerID,
	}
	if err := s.repo.DisabledSlot.Create(ctx, d); err != nil {
		s.logger.Error("create disabled week failed", zap.String("slot_id", slot.SlotID), zap.Error(err))
		return err
	}
	*wrote = true
	return nil
}

func (s *slotService) ownedSlot(ctx context.Context, id, ownerID string) (*model.Slot, error) {
	slot, err := s.repo.Slot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("get slot failed", zap.String("slot_id", id), zap.Error(err))
		return nil, err
	}
	if slot.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return slot, nil
}

func (s *slotService) ownedTimetable(ctx context.Context, id, ownerID string) (*model.Timetable, error) {
	timetable, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("get timetable failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if timetable.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return timetable, nil
}

func (s *slotService) invalidate(ctx context.Context, timetableID string) {
	if s.cache != nil {
		s.cache.InvalidateTimetable(ctx, timetableID)
	}
}

func validateSaveFlags(req *dto.SaveSlotRequest) error {
	if req.DisableFuture && req.EnableFuture {
		return ErrConflictingFlags
	}
	if (req.DisableFuture || req.EnableFuture) &&
		(req.ThisWeekOnly || req.DisabledThisWeek != nil || req.DisabledAlways != nil) {
		return ErrConflictingFlags
	}
	return nil
}

func validateTimeRange(startTime, endTime string) error {
	start, err := timeutil.TimeToMinutes(startTime)
	if err != nil {
		return err
	}
	end, err := timeutil.TimeToMinutes(endTime)
	if err != nil {
		return err
	}
	if start >= end {
		return ErrInvalidSlotTimes
	}
	return nil
}

func toSlotResponse(s *model.Slot) *dto.SlotResponse {
	return &dto.SlotResponse{
		ID:          s.SlotID,
		TimetableID: s.TimetableID,
		Day:         s.Day,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Disabled:    s.Disabled,
		CreatedAt:   s.CreatedAt.Format(timestampLayout),
		UpdatedAt:   s.UpdatedAt.Format(timestampLayout),
	}
}
