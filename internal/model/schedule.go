package model

import "time"

// DaySession tags which part of the day a schedule belongs to. Informational
// only; conflict detection relies on the actual time range.
type DaySession string

const (
	SessionMorning   DaySession = "morning"
	SessionAfternoon DaySession = "afternoon"
	SessionEvening   DaySession = "evening"
)

// ConflictScope is the dimension along which schedule overlap is checked.
type ConflictScope string

const (
	ConflictScopeTeacher ConflictScope = "teacher"
	ConflictScopeClass   ConflictScope = "class"
)

// Schedule is one concrete teaching slot: a class taught by a teacher on a
// given day and time range of a specific calendar week. Times are local
// wall-clock "HH:MM" strings; zero-padded they compare correctly as strings.
type Schedule struct {
	ID          int        `json:"id"`
	ClassID     int        `json:"class_id"`
	TeacherID   int        `json:"teacher_id"`
	DayOfWeek   int        `json:"day_of_week"` // 1=Monday .. 7=Sunday
	Session     DaySession `json:"session"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Subject     string     `json:"subject,omitempty"`
	Room        string     `json:"room,omitempty"`
	WeekKey     string     `json:"week_key"`
	WeekCreated string     `json:"week_created"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ScopeKey returns the schedule's key along the given conflict scope.
func (s *Schedule) ScopeKey(scope ConflictScope) int {
	if scope == ConflictScopeClass {
		return s.ClassID
	}
	return s.TeacherID
}

// TimesOverlap reports whether two wall-clock ranges overlap using strict
// open-interval semantics: back-to-back ranges sharing an endpoint do not
// overlap. Arguments are zero-padded "HH:MM" strings.
func TimesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// Overlaps reports whether the time ranges of two schedules overlap.
func (s *Schedule) Overlaps(other *Schedule) bool {
	return TimesOverlap(s.StartTime, s.EndTime, other.StartTime, other.EndTime)
}

// CreateScheduleRequest is the payload for creating a schedule.
type CreateScheduleRequest struct {
	ClassID   int        `json:"class_id" binding:"required"`
	TeacherID int        `json:"teacher_id" binding:"required"`
	DayOfWeek int        `json:"day_of_week" binding:"required,min=1,max=7"`
	Session   DaySession `json:"session" binding:"required,oneof=morning afternoon evening"`
	StartTime string     `json:"start_time" binding:"required,hhmm"`
	EndTime   string     `json:"end_time" binding:"required,hhmm"`
	Subject   string     `json:"subject" binding:"omitempty,max=100"`
	Room      string     `json:"room" binding:"omitempty,max=50"`
	WeekKey   string     `json:"week_key" binding:"required,weekkey"`
}

// UpdateScheduleRequest is the payload for editing a schedule. The same
// fields are required as on create; the edit replaces the slot in place.
type UpdateScheduleRequest struct {
	ClassID   int        `json:"class_id" binding:"required"`
	TeacherID int        `json:"teacher_id" binding:"required"`
	DayOfWeek int        `json:"day_of_week" binding:"required,min=1,max=7"`
	Session   DaySession `json:"session" binding:"required,oneof=morning afternoon evening"`
	StartTime string     `json:"start_time" binding:"required,hhmm"`
	EndTime   string     `json:"end_time" binding:"required,hhmm"`
	Subject   string     `json:"subject" binding:"omitempty,max=100"`
	Room      string     `json:"room" binding:"omitempty,max=50"`
	WeekKey   string     `json:"week_key" binding:"required,weekkey"`
}

// CopyWeekScope selects which schedules a week copy includes.
type CopyWeekScope string

const (
	CopyScopeAll   CopyWeekScope = "all"
	CopyScopeClass CopyWeekScope = "class"
)

// CopyWeekRequest is the payload for copying one week's schedules to another.
type CopyWeekRequest struct {
	SourceWeek string        `json:"source_week" binding:"required,weekkey"`
	TargetWeek string        `json:"target_week" binding:"required,weekkey"`
	Scope      CopyWeekScope `json:"scope" binding:"required,oneof=all class"`
	ClassID    int           `json:"class_id" binding:"required_if=Scope class"`
}
