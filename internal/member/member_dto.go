package member

type MemberResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Avatar         string  `json:"avatar"`
	TotalHours     float64 `json:"total_hours"`
	AttendanceRate int     `json:"attendance_rate"`
}
