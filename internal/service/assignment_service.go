package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"slotboard/backend/internal/dto"
	"slotboard/backend/internal/model"
	"slotboard/backend/internal/repository"
)

// ── assignment business errors ──

var (
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrClassAlreadyAssigned   = errors.New("class already assigned to this slot for this week")
	ErrClassWrongWeek         = errors.New("class is restricted to a different week")
	ErrClassTimetableMismatch = errors.New("class and slot belong to different timetables")
)

// AssignmentService assignment (slot-class) business interface.
type AssignmentService interface {
	// Assign binds a class to a slot for the week containing the request
	// date. A class already visible in that slot and week is rejected; a
	// text override the class carries elsewhere in the week is copied onto
	// the new assignment.
	Assign(ctx context.Context, req *dto.AssignClassRequest, ownerID string) (*dto.AssignmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, ownerID string) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type assignmentService struct {
	repo      *repository.Repository
	cache     ScheduleCache
	weekStart time.Weekday
	logger    *zap.Logger
}

// NewAssignmentService creates an AssignmentService.
func NewAssignmentService(repo *repository.Repository, cache ScheduleCache, weekStart time.Weekday, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, cache: cache, weekStart: weekStart, logger: logger}
}

func (s *assignmentService) Assign(ctx context.Context, req *dto.AssignClassRequest, ownerID string) (*dto.AssignmentResponse, error) {
	slot, err := s.ownedSlot(ctx, req.SlotID, ownerID)
	if err != nil {
		return nil, err
	}
	class, err := s.ownedClass(ctx, req.ClassID, ownerID)
	if err != nil {
		return nil, err
	}
	if class.TimetableID != slot.TimetableID {
		return nil, ErrClassTimetableMismatch
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	week := NewWeekRef(date, s.weekStart)

	if year, wk, ok := class.RestrictedToWeek(); ok && (year != week.Year || wk != week.Week) {
		return nil, ErrClassWrongWeek
	}

	assignments, err := s.repo.SlotClass.ListByTimetableWeek(ctx, slot.TimetableID, week.Year, week.Week)
	if err != nil {
		s.logger.Error("list assignments failed", zap.String("timetable_id", slot.TimetableID), zap.Error(err))
		return nil, err
	}
	for _, a := range VisibleAssignments(assignments, slot.SlotID, week) {
		if a.ClassID == class.ClassID {
			return nil, ErrClassAlreadyAssigned
		}
	}

	size := req.Size
	if size == "" {
		size = "whole"
	}

	sc := &model.SlotClass{
		SlotClassID: uuid.New().String(),
		TimetableID: slot.TimetableID,
		SlotID:      slot.SlotID,
		ClassID:     class.ClassID,
		Year:        week.Year,
		WeekNumber:  week.Week,
		Size:        size,
		// Adding the same class twice in one week carries the existing
		// text override over, so both cards show the same note.
		Text:    SeedText(assignments, class.ClassID, week),
		OwnerID: ownerID,
		Class:   class,
	}

	if err := s.repo.SlotClass.Create(ctx, sc); err != nil {
		s.logger.Error("create assignment failed", zap.String("slot_id", slot.SlotID), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, slot.TimetableID)
	return toAssignmentResponse(sc), nil
}

func (s *assignmentService) Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, ownerID string) (*dto.AssignmentResponse, error) {
	sc, err := s.ownedAssignment(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		sc.Text = req.Text
	}
	if req.Complete != nil {
		sc.Complete = *req.Complete
	}
	if req.Hidden != nil {
		sc.Hidden = *req.Hidden
	}

	if err := s.repo.SlotClass.Update(ctx, sc); err != nil {
		s.logger.Error("update assignment failed", zap.String("assignment_id", id), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, sc.TimetableID)
	return toAssignmentResponse(sc), nil
}

func (s *assignmentService) Delete(ctx context.Context, id, ownerID string) error {
	sc, err := s.ownedAssignment(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.repo.SlotClass.Delete(ctx, id); err != nil {
		s.logger.Error("delete assignment failed", zap.String("assignment_id", id), zap.Error(err))
		return err
	}

	s.invalidate(ctx, sc.TimetableID)
	return nil
}

// ── helpers ──

func (s *assignmentService) ownedAssignment(ctx context.Context, id, ownerID string) (*model.SlotClass, error) {
	sc, err := s.repo.SlotClass.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("get assignment failed", zap.String("assignment_id", id), zap.Error(err))
		return nil, err
	}
	if sc.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return sc, nil
}

func (s *assignmentService) ownedSlot(ctx context.Context, id, ownerID string) (*model.Slot, error) {
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

func (s *assignmentService) ownedClass(ctx context.Context, id, ownerID string) (*model.Class, error) {
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

func (s *assignmentService) invalidate(ctx context.Context, timetableID string) {
	if s.cache != nil {
		s.cache.InvalidateTimetable(ctx, timetableID)
	}
}

func toAssignmentResponse(sc *model.SlotClass) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:         sc.SlotClassID,
		SlotID:     sc.SlotID,
		ClassID:    sc.ClassID,
		Year:       sc.Year,
		WeekNumber: sc.WeekNumber,
		Size:       sc.Size,
		Text:       DisplayText(sc),
		Complete:   sc.Complete,
		Hidden:     sc.Hidden,
	}
	if sc.Class != nil {
		resp.Class = toClassResponse(sc.Class)
	}
	return resp
}
