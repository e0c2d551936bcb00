package handler

import (
	"slotboard/backend/internal/service"
	"slotboard/backend/pkg/redis"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Timetable  *TimetableHandler
	Slot       *SlotHandler
	Class      *ClassHandler
	Assignment *AssignmentHandler
	Export     *ExportHandler
}

// NewHandler wires the aggregate. rdb backs the logout blacklist and may
// be nil.
func NewHandler(svc *service.Service, rdb *redis.Client) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, svc.User, rdb),
		User:       NewUserHandler(svc.User),
		Timetable:  NewTimetableHandler(svc.Timetable, svc.Schedule),
		Slot:       NewSlotHandler(svc.Slot, svc.Schedule),
		Class:      NewClassHandler(svc.Class),
		Assignment: NewAssignmentHandler(svc.Assignment),
		Export:     NewExportHandler(svc.Export),
	}
}
