package websocket

import "github.com/lophocvn/lophoc-backend/internal/model"

// ─── Events (Server → Client) ───────────────────────────────────────

// EventType identifies what changed on the schedule board.
type EventType string

const (
	EventScheduleCreated EventType = "schedule.created"
	EventScheduleUpdated EventType = "schedule.updated"
	EventScheduleDeleted EventType = "schedule.deleted"
	EventWeekCopied      EventType = "week.copied"
	EventError           EventType = "error"
	EventPong            EventType = "pong"
)

// ScheduleEvent is broadcast to schedule board subscribers whenever a
// schedule mutation commits. It is also the payload published on the Redis
// events channel, so every server instance fans it out to its own clients.
type ScheduleEvent struct {
	Type     EventType       `json:"type"`
	WeekKey  string          `json:"week_key"`
	Schedule *model.Schedule `json:"schedule,omitempty"`
	// Week copy summary, set for EventWeekCopied only.
	SourceWeek  string `json:"source_week,omitempty"`
	Copied      int    `json:"copied,omitempty"`
	Enrollments int    `json:"enrollments,omitempty"`
}

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

type ErrorResponse struct {
	Event EventType `json:"event"`
	Error string    `json:"error"`
}

type PongResponse struct {
	Event EventType `json:"event"`
}
