package attendance

type RecordEventRequest struct {
	Action string `json:"action" binding:"required,oneof=enter exit"`
}

type LogResponse struct {
	ID       string `json:"id"`
	MemberID string `json:"member_id"`
	Action   string `json:"action"`
	LoggedAt string `json:"logged_at"`
}

// ActivityResponse is one row of the dashboard's live activity feed: a log
// entry joined with the member's display identity.
type ActivityResponse struct {
	ID         string `json:"id"`
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Avatar     string `json:"avatar"`
	Action     string `json:"action"`
	LoggedAt   string `json:"logged_at"`
}

type SessionResponse struct {
	EnterAt         string  `json:"enter_at"`
	ExitAt          *string `json:"exit_at,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Open            bool    `json:"open"`
}

type MemberSummary struct {
	MemberID       string  `json:"member_id"`
	Name           string  `json:"name"`
	Avatar         string  `json:"avatar"`
	TodayMinutes   int     `json:"today_minutes"`
	TotalMinutes   int     `json:"total_minutes"`
	TotalHours     float64 `json:"total_hours"`
	AttendanceRate int     `json:"attendance_rate"`
	IsOnline       bool    `json:"is_online"`
}

type SummaryResponse struct {
	Members     []MemberSummary `json:"members"`
	OnlineCount int             `json:"online_count"`
	MemberCount int             `json:"member_count"`
}
