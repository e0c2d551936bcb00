package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"slotboard/backend/internal/dto"
)

func setupClassService() (ClassService, *testMocks) {
	repo, m := newTestRepository()
	svc := NewClassService(repo, nil, zap.NewNop())
	return svc, m
}

func TestClassService_Create(t *testing.T) {
	svc, m := setupClassService()
	seedTimetable(m, "tt-1", "owner-1")

	req := &dto.CreateClassRequest{
		TimetableID: "tt-1",
		Name:        "Maths",
		BgColor:     "#ffcc00",
		TextColor:   "#000000",
		DefaultText: "bring calculator",
	}

	result, err := svc.Create(context.Background(), req, "owner-1")
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if result.Name != "Maths" || result.DefaultText != "bring calculator" {
		t.Errorf("unexpected class: %+v", result)
	}
	if result.WeekNumber != nil || result.Year != nil {
		t.Error("expected no week restriction")
	}
}

func TestClassService_Create_IncompleteRestriction(t *testing.T) {
	svc, m := setupClassService()
	seedTimetable(m, "tt-1", "owner-1")

	week := 10
	req := &dto.CreateClassRequest{
		TimetableID: "tt-1",
		Name:        "Assembly",
		BgColor:     "#fff",
		TextColor:   "#000",
		WeekNumber:  &week,
	}

	if _, err := svc.Create(context.Background(), req, "owner-1"); !errors.Is(err, ErrIncompleteRestriction) {
		t.Errorf("expected ErrIncompleteRestriction, got %v", err)
	}
}

func TestClassService_Update_ClearWeekRestriction(t *testing.T) {
	svc, m := setupClassService()
	seedTimetable(m, "tt-1", "owner-1")
	class := seedClass(m, "c1", "tt-1", "Assembly", "owner-1")
	year, week := 2024, 10
	class.Year = &year
	class.WeekNumber = &week

	result, err := svc.Update(context.Background(), "c1", &dto.UpdateClassRequest{ClearWeekRestriction: true}, "owner-1")
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if result.WeekNumber != nil || result.Year != nil {
		t.Errorf("expected restriction cleared, got %+v", result)
	}
}

func TestClassService_ListByTimetable(t *testing.T) {
	svc, m := setupClassService()
	seedTimetable(m, "tt-1", "owner-1")
	seedClass(m, "c1", "tt-1", "Maths", "owner-1")
	seedClass(m, "c2", "tt-1", "Art", "owner-1")

	result, err := svc.ListByTimetable(context.Background(), "tt-1", "owner-1")
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(result))
	}

	if _, err := svc.ListByTimetable(context.Background(), "tt-1", "intruder"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
}

func TestClassService_Delete_NotFound(t *testing.T) {
	svc, m := setupClassService()
	seedTimetable(m, "tt-1", "owner-1")

	if err := svc.Delete(context.Background(), "missing", "owner-1"); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("expected ErrClassNotFound, got %v", err)
	}
}
