package attendance

import (
	"time"

	"github.com/google/uuid"
)

// MemberMinutes holds the two totals the dashboard ranks by.
type MemberMinutes struct {
	Today int
	Total int
}

// Aggregate recomputes per-member minute totals from full event streams.
// There is no incremental path: every call rebuilds sessions from scratch,
// so correctness depends only on BuildSessions, never on a stored running
// total.
//
// A session counts toward Today when the calendar date of its enter time (in
// loc) matches the calendar date of now. Sessions crossing midnight are
// attributed entirely to their enter date; they are never split.
func Aggregate(logsByMember map[uuid.UUID][]AttendanceLog, now time.Time, loc *time.Location) map[uuid.UUID]MemberMinutes {
	result := make(map[uuid.UUID]MemberMinutes, len(logsByMember))

	todayY, todayM, todayD := now.In(loc).Date()

	for memberID, logs := range logsByMember {
		var mm MemberMinutes
		for _, s := range BuildSessions(logs, now) {
			mm.Total += s.DurationMinutes

			y, m, d := s.EnterAt.In(loc).Date()
			if y == todayY && m == todayM && d == todayD {
				mm.Today += s.DurationMinutes
			}
		}
		result[memberID] = mm
	}

	return result
}

// GroupByMember splits a combined chronological log into per-member streams,
// preserving the fetched order within each member.
func GroupByMember(logs []AttendanceLog) map[uuid.UUID][]AttendanceLog {
	grouped := make(map[uuid.UUID][]AttendanceLog)
	for _, log := range logs {
		grouped[log.MemberID] = append(grouped[log.MemberID], log)
	}
	return grouped
}
