package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"time"

	attendanceerrors "github.com/psyoonchild719/online-library-dashboard/internal/attendance/errors"
	"github.com/psyoonchild719/online-library-dashboard/internal/events"
	"github.com/psyoonchild719/online-library-dashboard/internal/member"
	"github.com/psyoonchild719/online-library-dashboard/internal/messaging/kafka"
	"github.com/psyoonchild719/online-library-dashboard/internal/realtime"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/apperror"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// attendanceRateWindowDays is the sliding window used for the cached
// attendance_rate: the share of the last 28 calendar days with at least one
// session.
const attendanceRateWindowDays = 28

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	RecordEvent(ctx context.Context, memberID string, req RecordEventRequest) (LogResponse, error)
	GetRecent(ctx context.Context, limit int) ([]ActivityResponse, error)
	GetMemberSessions(ctx context.Context, memberID string, limit int) ([]SessionResponse, error)
	GetSummary(ctx context.Context) (SummaryResponse, error)
	DeleteLog(ctx context.Context, id string) error
	RefreshMemberStats(ctx context.Context, memberID string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	members  member.Repository
	outbox   kafka.OutboxRepository
	notifier realtime.Notifier
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, members member.Repository, loc *time.Location, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, members, nil, nil, loc, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	members member.Repository,
	outboxRepo kafka.OutboxRepository,
	notifier realtime.Notifier,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = time.Local
	}
	return &service{
		db:       db,
		repo:     repo,
		members:  members,
		outbox:   outboxRepo,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		logger:   l,
	}
}

// RecordEvent appends one enter/exit fact and mirrors it into the
// online_status row. There is deliberately no mutual exclusion on the
// open-session slot: a second device issuing enter succeeds and produces a
// double-enter that BuildSessions absorbs.
func (s *service) RecordEvent(ctx context.Context, memberID string, req RecordEventRequest) (LogResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	mid, err := uuid.Parse(memberID)
	if err != nil {
		return LogResponse{}, attendanceerrors.ErrInvalidMemberID
	}
	if req.Action != ActionEnter && req.Action != ActionExit {
		return LogResponse{}, attendanceerrors.ErrInvalidAction
	}

	now := s.now().UTC()
	row := &AttendanceLog{
		ID:       uuid.New(),
		MemberID: mid,
		Action:   req.Action,
		LoggedAt: now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.CreateLog(ctx, row); err != nil {
		s.logger.Error("append attendance log failed",
			zap.String("request_id", rid),
			zap.String("member_id", memberID),
			zap.Error(err),
		)
		return LogResponse{}, err
	}

	if s.outbox != nil {
		if err := s.writeOutboxEvent(ctx, tx, row, rid); err != nil {
			return LogResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LogResponse{}, err
	}

	// Status mirror follows every successful append. A mirror failure is a
	// write failure the caller sees; the log row itself stays committed, and
	// reconstruction from the log remains correct regardless.
	isOnline := req.Action == ActionEnter
	if err := s.repo.UpsertStatus(ctx, memberID, isOnline, now); err != nil {
		s.logger.Error("online status mirror failed",
			zap.String("request_id", rid),
			zap.String("member_id", memberID),
			zap.Error(err),
		)
		return LogResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Online status could not be updated", 500)
	}

	s.publishChange(ctx, realtime.ChangeNotice{
		Table:    realtime.TableAttendanceLogs,
		Action:   realtime.ChangeInsert,
		ID:       row.ID.String(),
		MemberID: memberID,
	})
	s.publishChange(ctx, realtime.ChangeNotice{
		Table:    realtime.TableOnlineStatus,
		Action:   realtime.ChangeUpdate,
		MemberID: memberID,
	})

	// Best-effort cache refresh on exit. The event log stays the source of
	// truth; a failed refresh only leaves the cached stats stale until the
	// next trigger.
	if req.Action == ActionExit {
		if err := s.RefreshMemberStats(ctx, memberID); err != nil {
			s.logger.Warn("member stats refresh failed",
				zap.String("member_id", memberID),
				zap.Error(err),
			)
		}
	}

	return LogResponse{
		ID:       row.ID.String(),
		MemberID: memberID,
		Action:   row.Action,
		LoggedAt: row.LoggedAt.Format(time.RFC3339),
	}, nil
}

func (s *service) writeOutboxEvent(ctx context.Context, tx *sql.Tx, row *AttendanceLog, rid string) error {
	eventType := events.EventTypeAttendanceEntered
	if row.Action == ActionExit {
		eventType = events.EventTypeAttendanceExited
	}

	payload, err := json.Marshal(events.AttendanceRecordedEvent{
		EventType: eventType,
		LogID:     row.ID.String(),
		MemberID:  row.MemberID.String(),
		Action:    row.Action,
		LoggedAt:  row.LoggedAt,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "attendance_log",
		AggregateID:   row.ID.String(),
		EventType:     eventType,
		Topic:         events.AttendanceRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) publishChange(ctx context.Context, n realtime.ChangeNotice) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, n)
	}
}

func (s *service) GetRecent(ctx context.Context, limit int) ([]ActivityResponse, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeServiceUnavailable,
			attendanceerrors.ErrEventLogUnavailable.Message, attendanceerrors.ErrEventLogUnavailable.HTTPStatus)
	}

	res := make([]ActivityResponse, len(rows))
	for i, row := range rows {
		res[i] = ActivityResponse{
			ID:       row.ID.String(),
			MemberID: row.MemberID.String(),
			Action:   row.Action,
			LoggedAt: row.LoggedAt.Format(time.RFC3339),
		}
		if row.Member != nil {
			res[i].MemberName = row.Member.Name
			res[i].Avatar = row.Member.Avatar
		}
	}
	return res, nil
}

// GetMemberSessions reconstructs one member's personal records from the
// newest limit log rows, newest session first.
func (s *service) GetMemberSessions(ctx context.Context, memberID string, limit int) ([]SessionResponse, error) {
	if _, err := uuid.Parse(memberID); err != nil {
		return nil, attendanceerrors.ErrInvalidMemberID
	}
	if limit <= 0 {
		limit = 50
	}

	logs, err := s.repo.ListRecentByMember(ctx, memberID, limit)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeServiceUnavailable,
			attendanceerrors.ErrEventLogUnavailable.Message, attendanceerrors.ErrEventLogUnavailable.HTTPStatus)
	}

	sessions := BuildSessions(logs, s.now())

	res := make([]SessionResponse, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		sess := sessions[i]
		sr := SessionResponse{
			EnterAt:         sess.EnterAt.Format(time.RFC3339),
			DurationMinutes: sess.DurationMinutes,
			Open:            sess.Open(),
		}
		if sess.ExitAt != nil {
			v := sess.ExitAt.Format(time.RFC3339)
			sr.ExitAt = &v
		}
		res = append(res, sr)
	}
	return res, nil
}

// GetSummary is the dashboard projection: every member with today/total
// minutes and the live online flag, ranked by today's minutes. Totals are
// recomputed from the full event log on every call.
func (s *service) GetSummary(ctx context.Context) (SummaryResponse, error) {
	members, err := s.members.FindAll(ctx)
	if err != nil {
		return SummaryResponse{}, apperror.Wrap(err, apperror.CodeServiceUnavailable,
			"Members could not be loaded", attendanceerrors.ErrEventLogUnavailable.HTTPStatus)
	}

	logs, err := s.repo.ListAll(ctx)
	if err != nil {
		// An unavailable log is an explicit error state, never an
		// all-zeroes summary pretending to be real data.
		return SummaryResponse{}, apperror.Wrap(err, apperror.CodeServiceUnavailable,
			attendanceerrors.ErrEventLogUnavailable.Message, attendanceerrors.ErrEventLogUnavailable.HTTPStatus)
	}

	statuses, err := s.repo.FindAllStatus(ctx)
	if err != nil {
		return SummaryResponse{}, apperror.Wrap(err, apperror.CodeServiceUnavailable,
			"Online status could not be loaded", attendanceerrors.ErrEventLogUnavailable.HTTPStatus)
	}

	online := make(map[uuid.UUID]bool, len(statuses))
	for _, st := range statuses {
		online[st.MemberID] = st.IsOnline
	}

	minutes := Aggregate(GroupByMember(logs), s.now(), s.loc)

	summaries := make([]MemberSummary, 0, len(members))
	onlineCount := 0
	for _, m := range members {
		mm := minutes[m.ID]
		isOnline := online[m.ID]
		if isOnline {
			onlineCount++
		}
		summaries = append(summaries, MemberSummary{
			MemberID:       m.ID.String(),
			Name:           m.Name,
			Avatar:         m.Avatar,
			TodayMinutes:   mm.Today,
			TotalMinutes:   mm.Total,
			TotalHours:     m.TotalHours,
			AttendanceRate: m.AttendanceRate,
			IsOnline:       isOnline,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TodayMinutes != summaries[j].TodayMinutes {
			return summaries[i].TodayMinutes > summaries[j].TodayMinutes
		}
		if summaries[i].TotalMinutes != summaries[j].TotalMinutes {
			return summaries[i].TotalMinutes > summaries[j].TotalMinutes
		}
		return summaries[i].Name < summaries[j].Name
	})

	return SummaryResponse{
		Members:     summaries,
		OnlineCount: onlineCount,
		MemberCount: len(members),
	}, nil
}

func (s *service) DeleteLog(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrLogNotFound
	}

	if err := s.repo.DeleteLog(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendanceerrors.ErrLogNotFound
		}
		return err
	}

	s.publishChange(ctx, realtime.ChangeNotice{
		Table:  realtime.TableAttendanceLogs,
		Action: realtime.ChangeDelete,
		ID:     id,
	})
	return nil
}

// RefreshMemberStats recomputes the cached total_hours and attendance_rate
// on the member row from the full event log. Called on exit and by the
// stats consumer; between triggers the cached values may lag the log.
func (s *service) RefreshMemberStats(ctx context.Context, memberID string) error {
	if _, err := uuid.Parse(memberID); err != nil {
		return attendanceerrors.ErrInvalidMemberID
	}

	logs, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return err
	}

	now := s.now()
	sessions := BuildSessions(logs, now)

	totalMinutes := 0
	activeDays := make(map[string]struct{})
	windowStart := now.In(s.loc).AddDate(0, 0, -attendanceRateWindowDays)

	for _, sess := range sessions {
		totalMinutes += sess.DurationMinutes

		enterLocal := sess.EnterAt.In(s.loc)
		if enterLocal.After(windowStart) {
			activeDays[enterLocal.Format("2006-01-02")] = struct{}{}
		}
	}

	totalHours := math.Round(float64(totalMinutes)/60.0*10) / 10
	rate := len(activeDays) * 100 / attendanceRateWindowDays
	if rate > 100 {
		rate = 100
	}

	return s.members.UpdateStats(ctx, memberID, totalHours, rate)
}
