package attendance

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Session is a derived value: one enter-to-exit (or enter-to-now) interval
// reconstructed from a member's event log. Sessions are never stored;
// callers recompute them from the log on every read.
type Session struct {
	MemberID        uuid.UUID
	EnterAt         time.Time
	ExitAt          *time.Time // nil while the session is still open
	DurationMinutes int
}

func (s Session) Open() bool {
	return s.ExitAt == nil
}

// BuildSessions pairs a single member's chronologically ordered events into
// sessions. The caller guarantees ordering; this routine never sorts.
//
// Malformed streams degrade by dropping unmatched events instead of failing:
// a second enter while one is pending replaces the pending enter (the earlier
// one produces no session), and an exit with no pending enter is ignored.
// Nothing upstream prevents either shape: two browser tabs produce a
// double-enter, a closed laptop produces a missing exit.
//
// A trailing unmatched enter becomes an open session whose duration is
// measured against now, so open durations grow on every read. Durations are
// rounded to whole minutes per session, before any summation.
func BuildSessions(logs []AttendanceLog, now time.Time) []Session {
	sessions := make([]Session, 0, len(logs)/2+1)

	var pending *AttendanceLog
	for i := range logs {
		log := logs[i]
		switch log.Action {
		case ActionEnter:
			pending = &logs[i]
		case ActionExit:
			if pending == nil {
				continue
			}
			exitAt := log.LoggedAt
			sessions = append(sessions, Session{
				MemberID:        log.MemberID,
				EnterAt:         pending.LoggedAt,
				ExitAt:          &exitAt,
				DurationMinutes: roundMinutes(pending.LoggedAt, exitAt),
			})
			pending = nil
		}
	}

	if pending != nil {
		sessions = append(sessions, Session{
			MemberID:        pending.MemberID,
			EnterAt:         pending.LoggedAt,
			DurationMinutes: roundMinutes(pending.LoggedAt, now),
		})
	}

	return sessions
}

func roundMinutes(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(math.Round(to.Sub(from).Minutes()))
}
