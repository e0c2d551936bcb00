package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"slotboard/backend/internal/dto"
	"slotboard/backend/internal/model"
	"slotboard/backend/internal/repository"
	"slotboard/backend/pkg/timeutil"
)

// ScheduleService resolves timetables into concrete weeks.
type ScheduleService interface {
	// GetWeekSchedule returns the fully resolved schedule of the week
	// containing date: overrides applied, hidden assignments dropped,
	// days in timetable order.
	GetWeekSchedule(ctx context.Context, timetableID, date, ownerID string) (*dto.WeekScheduleResponse, error)
	GetDaySchedule(ctx context.Context, timetableID, date, ownerID string) (*dto.DayScheduleResponse, error)
	// GetAvailableClasses lists the classes that can still be added to the
	// slot in the week containing date.
	GetAvailableClasses(ctx context.Context, slotID, date, ownerID string) ([]dto.ClassResponse, error)
}

type scheduleService struct {
	repo      *repository.Repository
	cache     ScheduleCache
	weekStart time.Weekday
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(repo *repository.Repository, cache ScheduleCache, weekStart time.Weekday, cacheTTL time.Duration, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, cache: cache, weekStart: weekStart, cacheTTL: cacheTTL, logger: logger}
}

func (s *scheduleService) GetWeekSchedule(ctx context.Context, timetableID, date, ownerID string) (*dto.WeekScheduleResponse, error) {
	timetable, err := s.ownedTimetable(ctx, timetableID, ownerID)
	if err != nil {
		return nil, err
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	week := NewWeekRef(day, s.weekStart)

	if s.cache != nil {
		if payload, ok := s.cache.GetWeekSchedule(ctx, timetableID, week.Year, week.Week); ok {
			var cached dto.WeekScheduleResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
			s.logger.Warn("dropping malformed cached schedule",
				zap.String("timetable_id", timetableID), zap.Error(err))
		}
	}

	resp, err := s.buildWeek(ctx, timetable, week)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			s.cache.SetWeekSchedule(ctx, timetableID, week.Year, week.Week, payload, s.cacheTTL)
		}
	}
	return resp, nil
}

func (s *scheduleService) GetDaySchedule(ctx context.Context, timetableID, date, ownerID string) (*dto.DayScheduleResponse, error) {
	weekResp, err := s.GetWeekSchedule(ctx, timetableID, date, ownerID)
	if err != nil {
		return nil, err
	}

	day, _ := parseDate(date)
	name := timeutil.WeekdayNames[(int(day.Weekday())+6)%7]
	for i := range weekResp.Days {
		if weekResp.Days[i].Day == name {
			return &weekResp.Days[i], nil
		}
	}
	return nil, ErrDayNotInTimetable
}

func (s *scheduleService) GetAvailableClasses(ctx context.Context, slotID, date, ownerID string) ([]dto.ClassResponse, error) {
	slot, err := s.repo.Slot.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("get slot failed", zap.String("slot_id", slotID), zap.Error(err))
		return nil, err
	}
	if slot.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	week := NewWeekRef(day, s.weekStart)

	classes, err := s.repo.Class.ListByTimetable(ctx, slot.TimetableID)
	if err != nil {
		s.logger.Error("list classes failed", zap.String("timetable_id", slot.TimetableID), zap.Error(err))
		return nil, err
	}
	assignments, err := s.repo.SlotClass.ListByTimetableWeek(ctx, slot.TimetableID, week.Year, week.Week)
	if err != nil {
		s.logger.Error("list assignments failed", zap.String("timetable_id", slot.TimetableID), zap.Error(err))
		return nil, err
	}

	available := AvailableClasses(classes, assignments, slot.SlotID, week)
	result := make([]dto.ClassResponse, 0, len(available))
	for i := range available {
		result = append(result, *toClassResponse(&available[i]))
	}
	return result, nil
}

// ── week building ──

func (s *scheduleService) buildWeek(ctx context.Context, timetable *model.Timetable, week WeekRef) (*dto.WeekScheduleResponse, error) {
	slots, err := s.repo.Slot.ListByTimetable(ctx, timetable.TimetableID)
	if err != nil {
		s.logger.Error("list slots failed", zap.String("timetable_id", timetable.TimetableID), zap.Error(err))
		return nil, err
	}
	assignments, err := s.repo.SlotClass.ListByTimetableWeek(ctx, timetable.TimetableID, week.Year, week.Week)
	if err != nil {
		s.logger.Error("list assignments failed", zap.String("timetable_id", timetable.TimetableID), zap.Error(err))
		return nil, err
	}

	// Resolve every slot once, then bucket by day.
	byDay := make(map[string][]dto.EffectiveSlotResponse, len(timetable.Days))
	for i := range slots {
		slot := &slots[i]
		eff := ResolveSlot(slot, week)
		if eff.ExtraOverrides > 0 {
			s.logger.Warn("duplicate duration overrides for week",
				zap.String("slot_id", slot.SlotID),
				zap.Int("year", week.Year),
				zap.Int("week", week.Week),
				zap.Int("extra", eff.ExtraOverrides))
		}

		effResp := dto.EffectiveSlotResponse{
			SlotID:             slot.SlotID,
			Day:                slot.Day,
			StartTime:          eff.StartTime,
			EndTime:            eff.EndTime,
			Disabled:           eff.Disabled,
			DurationOverridden: eff.DurationOverridden,
			Classes:            []dto.AssignmentResponse{},
		}
		for _, a := range VisibleAssignments(assignments, slot.SlotID, week) {
			effResp.Classes = append(effResp.Classes, *toAssignmentResponse(&a))
		}
		byDay[slot.Day] = append(byDay[slot.Day], effResp)
	}

	days := make([]dto.DayScheduleResponse, 0, len(timetable.Days))
	for _, name := range timetable.Days {
		daySlots := byDay[name]
		// Duration overrides can reorder a day, so sort by effective time.
		sort.SliceStable(daySlots, func(i, j int) bool {
			if daySlots[i].StartTime != daySlots[j].StartTime {
				return daySlots[i].StartTime < daySlots[j].StartTime
			}
			return daySlots[i].EndTime < daySlots[j].EndTime
		})
		if daySlots == nil {
			daySlots = []dto.EffectiveSlotResponse{}
		}

		weekday, err := timeutil.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		offset := (int(weekday) - int(s.weekStart) + 7) % 7
		days = append(days, dto.DayScheduleResponse{
			Day:   name,
			Date:  week.Start.AddDate(0, 0, offset).Format(dateLayout),
			Slots: daySlots,
		})
	}

	return &dto.WeekScheduleResponse{
		TimetableID: timetable.TimetableID,
		Name:        timetable.Name,
		Year:        week.Year,
		WeekNumber:  week.Week,
		WeekStart:   week.Start.Format(dateLayout),
		StartTime:   timetable.StartTime,
		EndTime:     timetable.EndTime,
		Days:        days,
	}, nil
}

func (s *scheduleService) ownedTimetable(ctx context.Context, id, ownerID string) (*model.Timetable, error) {
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
