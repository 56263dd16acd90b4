package events

import "time"

const AttendanceRecordedTopic = "study.attendance.v1"

// AttendanceRecordedEvent leaves the system through the outbox whenever an
// enter/exit row is appended. Consumers treat it as an invalidation signal
// and recompute from the event log, never as an incremental delta.
type AttendanceRecordedEvent struct {
	EventType string    `json:"event_type"`
	LogID     string    `json:"log_id"`
	MemberID  string    `json:"member_id"`
	Action    string    `json:"action"`
	LoggedAt  time.Time `json:"logged_at"`
}

const (
	EventTypeAttendanceEntered = "attendance.entered"
	EventTypeAttendanceExited  = "attendance.exited"
)
