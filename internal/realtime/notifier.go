package realtime

import "context"

// ChangeNotice tells clients that a row in a watched table changed. It is an
// invalidation signal only: subscribers re-fetch through the normal read
// path and never merge the notice into local aggregates, so notices arriving
// late or out of order are harmless.
type ChangeNotice struct {
	Table    string `json:"table"`
	Action   string `json:"action"`
	ID       string `json:"id,omitempty"`
	MemberID string `json:"member_id,omitempty"`
}

const (
	TableAttendanceLogs = "attendance_logs"
	TableOnlineStatus   = "online_status"

	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
	ChangeDelete = "DELETE"
)

// Notifier is the write side of the change feed. Services publish after a
// successful commit; delivery is best-effort.
type Notifier interface {
	Notify(ctx context.Context, n ChangeNotice)
}
