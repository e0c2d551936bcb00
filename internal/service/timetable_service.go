package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"slotboard/backend/internal/dto"
	"slotboard/backend/internal/model"
	"slotboard/backend/internal/repository"
	"slotboard/backend/pkg/timeutil"
)

// ── timetable business errors ──

var (
	ErrTimetableNotFound = errors.New("timetable not found")
	ErrInvalidDayName    = errors.New("invalid weekday name")
	ErrInvalidTimeWindow = errors.New("day start must be before day end")
)

// TimetableService timetable business interface.
type TimetableService interface {
	Create(ctx context.Context, req *dto.CreateTimetableRequest, ownerID string) (*dto.TimetableResponse, error)
	GetByID(ctx context.Context, id, ownerID string) (*dto.TimetableResponse, error)
	List(ctx context.Context, ownerID string) ([]dto.TimetableResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTimetableRequest, ownerID string) (*dto.TimetableResponse, error)
	// Delete cascades to slots, overrides, classes and assignments.
	Delete(ctx context.Context, id, ownerID string) error
}

type timetableService struct {
	repo   *repository.Repository
	cache  ScheduleCache
	logger *zap.Logger
}

// NewTimetableService creates a TimetableService.
func NewTimetableService(repo *repository.Repository, cache ScheduleCache, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, cache: cache, logger: logger}
}

func (s *timetableService) Create(ctx context.Context, req *dto.CreateTimetableRequest, ownerID string) (*dto.TimetableResponse, error) {
	days, err := normalizeDays(req.Days)
	if err != nil {
		return nil, err
	}
	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeWindow
	}

	timetable := &model.Timetable{
		TimetableID: uuid.New().String(),
		Name:        req.Name,
		Days:        days,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		OwnerID:     ownerID,
	}

	if err := s.repo.Timetable.Create(ctx, timetable); err != nil {
		s.logger.Error("create timetable failed", zap.Error(err))
		return nil, err
	}

	return toTimetableResponse(timetable), nil
}

func (s *timetableService) GetByID(ctx context.Context, id, ownerID string) (*dto.TimetableResponse, error) {
	timetable, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return toTimetableResponse(timetable), nil
}

func (s *timetableService) List(ctx context.Context, ownerID string) ([]dto.TimetableResponse, error) {
	timetables, err := s.repo.Timetable.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("list timetables failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TimetableResponse, 0, len(timetables))
	for i := range timetables {
		result = append(result, *toTimetableResponse(&timetables[i]))
	}
	return result, nil
}

func (s *timetableService) Update(ctx context.Context, id string, req *dto.UpdateTimetableRequest, ownerID string) (*dto.TimetableResponse, error) {
	timetable, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		timetable.Name = *req.Name
	}
	if req.Days != nil {
		days, err := normalizeDays(req.Days)
		if err != nil {
			return nil, err
		}
		timetable.Days = days
	}
	if req.StartTime != nil {
		timetable.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		timetable.EndTime = *req.EndTime
	}
	if timetable.StartTime >= timetable.EndTime {
		return nil, ErrInvalidTimeWindow
	}

	if err := s.repo.Timetable.Update(ctx, timetable); err != nil {
		s.logger.Error("update timetable failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, id)
	return toTimetableResponse(timetable), nil
}

func (s *timetableService) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.getOwned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.repo.Timetable.Delete(ctx, id); err != nil {
		s.logger.Error("delete timetable failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// ── helpers ──

func (s *timetableService) getOwned(ctx context.Context, id, ownerID string) (*model.Timetable, error) {
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

func (s *timetableService) invalidate(ctx context.Context, timetableID string) {
	if s.cache != nil {
		s.cache.InvalidateTimetable(ctx, timetableID)
	}
}

// normalizeDays lowercases and validates weekday names, dropping
// duplicates and keeping canonical Monday-first order.
func normalizeDays(days []string) (model.StringArray, error) {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		d = strings.ToLower(d)
		if timeutil.WeekdayIndex(d) < 0 {
			return nil, ErrInvalidDayName
		}
		seen[d] = true
	}
	out := make(model.StringArray, 0, len(seen))
	for _, name := range timeutil.WeekdayNames {
		if seen[name] {
			out = append(out, name)
		}
	}
	return out, nil
}

func toTimetableResponse(t *model.Timetable) *dto.TimetableResponse {
	return &dto.TimetableResponse{
		ID:        t.TimetableID,
		Name:      t.Name,
		Days:      t.Days,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		CreatedAt: t.CreatedAt.Format(timestampLayout),
		UpdatedAt: t.UpdatedAt.Format(timestampLayout),
	}
}
