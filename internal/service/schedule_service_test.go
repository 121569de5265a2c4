package service

import (
	"testing"

	"github.com/lophocvn/lophoc-backend/internal/model"
)

func TestGroupByDay(t *testing.T) {
	schedules := []model.Schedule{
		{ID: 1, DayOfWeek: 1, StartTime: "08:00", EndTime: "09:30"},
		{ID: 2, DayOfWeek: 1, StartTime: "14:00", EndTime: "15:30"},
		{ID: 3, DayOfWeek: 3, StartTime: "08:00", EndTime: "09:30"},
		{ID: 4, DayOfWeek: 7, StartTime: "19:00", EndTime: "20:30"},
	}

	days := groupByDay(schedules)
	if len(days) != 3 {
		t.Fatalf("expected 3 day groups, got %d", len(days))
	}
	if days[0].DayOfWeek != 1 || len(days[0].Schedules) != 2 {
		t.Errorf("day 1 group wrong: %+v", days[0])
	}
	if days[1].DayOfWeek != 3 || len(days[1].Schedules) != 1 {
		t.Errorf("day 3 group wrong: %+v", days[1])
	}
	if days[2].DayOfWeek != 7 || days[2].Schedules[0].ID != 4 {
		t.Errorf("day 7 group wrong: %+v", days[2])
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if days := groupByDay(nil); len(days) != 0 {
		t.Fatalf("expected no groups, got %d", len(days))
	}
}

func TestConflictErrorMessage(t *testing.T) {
	withExisting := &ConflictError{
		Scope: model.ConflictScopeTeacher,
		Existing: &model.Schedule{
			ID: 12, DayOfWeek: 2, StartTime: "08:00", EndTime: "09:30", WeekKey: "2025-W25",
		},
	}
	if got := withExisting.Error(); got == "" {
		t.Fatal("expected non-empty message")
	}

	// Conflicts raised by the database constraint carry no existing record.
	fromConstraint := &ConflictError{Scope: model.ConflictScopeClass}
	if got := fromConstraint.Error(); got == "" {
		t.Fatal("expected non-empty message for constraint conflict")
	}
}
