package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"slotboard/backend/internal/dto"
	"slotboard/backend/internal/model"
	"slotboard/backend/internal/repository"
)

// ── class business errors ──

var (
	ErrClassNotFound         = errors.New("class not found")
	ErrIncompleteRestriction = errors.New("week restriction needs both year and week number")
)

// ClassService class business interface.
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest, ownerID string) (*dto.ClassResponse, error)
	GetByID(ctx context.Context, id, ownerID string) (*dto.ClassResponse, error)
	ListByTimetable(ctx context.Context, timetableID, ownerID string) ([]dto.ClassResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassRequest, ownerID string) (*dto.ClassResponse, error)
	// Delete cascades to the class's assignments.
	Delete(ctx context.Context, id, ownerID string) error
}

type classService struct {
	repo   *repository.Repository
	cache  ScheduleCache
	logger *zap.Logger
}

// NewClassService creates a ClassService.
func NewClassService(repo *repository.Repository, cache ScheduleCache, logger *zap.Logger) ClassService {
	return &classService{repo: repo, cache: cache, logger: logger}
}

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest, ownerID string) (*dto.ClassResponse, error) {
	timetable, err := s.ownedTimetable(ctx, req.TimetableID, ownerID)
	if err != nil {
		return nil, err
	}
	if (req.WeekNumber == nil) != (req.Year == nil) {
		return nil, ErrIncompleteRestriction
	}

	class := &model.Class{
		ClassID:     uuid.New().String(),
		TimetableID: timetable.TimetableID,
		Name:        req.Name,
		BgColor:     req.BgColor,
		TextColor:   req.TextColor,
		IconName:    req.IconName,
		DefaultText: req.DefaultText,
		WeekNumber:  req.WeekNumber,
		Year:        req.Year,
		OwnerID:     ownerID,
	}

	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("create class failed", zap.Error(err))
		return nil, err
	}

	return toClassResponse(class), nil
}

func (s *classService) GetByID(ctx context.Context, id, ownerID string) (*dto.ClassResponse, error) {
	class, err := s.ownedClass(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return toClassResponse(class), nil
}

func (s *classService) ListByTimetable(ctx context.Context, timetableID, ownerID string) ([]dto.ClassResponse, error) {
	if _, err := s.ownedTimetable(ctx, timetableID, ownerID); err != nil {
		return nil, err
	}

	classes, err := s.repo.Class.ListByTimetable(ctx, timetableID)
	if err != nil {
		s.logger.Error("list classes failed", zap.String("timetable_id", timetableID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *toClassResponse(&classes[i]))
	}
	return result, nil
}

func (s *classService) Update(ctx context.Context, id string, req *dto.UpdateClassRequest, ownerID string) (*dto.ClassResponse, error) {
	class, err := s.ownedClass(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.BgColor != nil {
		class.BgColor = *req.BgColor
	}
	if req.TextColor != nil {
		class.TextColor = *req.TextColor
	}
	if req.IconName != nil {
		class.IconName = *req.IconName
	}
	if req.DefaultText != nil {
		class.DefaultText = *req.DefaultText
	}
	if req.ClearWeekRestriction {
		class.WeekNumber = nil
		class.Year = nil
	} else {
		if req.WeekNumber != nil {
			class.WeekNumber = req.WeekNumber
		}
		if req.Year != nil {
			class.Year = req.Year
		}
		if (class.WeekNumber == nil) != (class.Year == nil) {
			return nil, ErrIncompleteRestriction
		}
	}

	if err := s.repo.Class.Update(ctx, class); err != nil {
		s.logger.Error("update class failed", zap.String("class_id", id), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, class.TimetableID)
	return toClassResponse(class), nil
}

func (s *classService) Delete(ctx context.Context, id, ownerID string) error {
	class, err := s.ownedClass(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.repo.Class.Delete(ctx, id); err != nil {
		s.logger.Error("delete class failed", zap.String("class_id", id), zap.Error(err))
		return err
	}

	s.invalidate(ctx, class.TimetableID)
	return nil
}

// ── helpers ──

func (s *classService) ownedClass(ctx context.Context, id, ownerID string) (*model.Class, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("get class failed", zap.String("class_id", id), zap.Error(err))
		return nil, err
	}
	if class.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return class, nil
}

func (s *classService) ownedTimetable(ctx context.Context, id, ownerID string) (*model.Timetable, error) {
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

func (s *classService) invalidate(ctx context.Context, timetableID string) {
	if s.cache != nil {
		s.cache.InvalidateTimetable(ctx, timetableID)
	}
}

func toClassResponse(c *model.Class) *dto.ClassResponse {
	return &dto.ClassResponse{
		ID:          c.ClassID,
		TimetableID: c.TimetableID,
		Name:        c.Name,
		BgColor:     c.BgColor,
		TextColor:   c.TextColor,
		IconName:    c.IconName,
		DefaultText: c.DefaultText,
		WeekNumber:  c.WeekNumber,
		Year:        c.Year,
		CreatedAt:   c.CreatedAt.Format(timestampLayout),
		UpdatedAt:   c.UpdatedAt.Format(timestampLayout),
	}
}
