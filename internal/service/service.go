package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"slotboard/backend/config"
	"slotboard/backend/internal/repository"
	"slotboard/backend/pkg/jwt"
)

// ── cross-module business errors ──

var (
	ErrNotOwner    = errors.New("record belongs to another user")
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05Z"
)

// parseDate parses the "YYYY-MM-DD" target-week date carried by requests.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ScheduleCache caches serialized resolved week schedules. Implemented by
// pkg/redis; nil-able, every caller degrades to uncached operation.
type ScheduleCache interface {
	GetWeekSchedule(ctx context.Context, timetableID string, year, week int) ([]byte, bool)
	SetWeekSchedule(ctx context.Context, timetableID string, year, week int, payload []byte, ttl time.Duration)
	InvalidateTimetable(ctx context.Context, timetableID string)
}

// Service aggregates every service.
type Service struct {
	Auth       AuthService
	User       UserService
	Timetable  TimetableService
	Slot       SlotService
	Class      ClassService
	Assignment AssignmentService
	Schedule   ScheduleService
	Export     ExportService
}

// NewService wires the aggregate. cache may be nil when redis is down.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache ScheduleCache,
	logger *zap.Logger,
) *Service {
	weekStart := cfg.Schedule.WeekStartWeekday()
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, logger),
		User:       NewUserService(repo, logger),
		Timetable:  NewTimetableService(repo, cache, logger),
		Slot:       NewSlotService(repo, cache, weekStart, logger),
		Class:      NewClassService(repo, cache, logger),
		Assignment: NewAssignmentService(repo, cache, weekStart, logger),
		Schedule:   NewScheduleService(repo, cache, weekStart, cfg.Schedule.CacheTTL, logger),
		Export:     NewExportService(repo, weekStart, logger),
	}
}
