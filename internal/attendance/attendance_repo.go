package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateLog(ctx context.Context, log *AttendanceLog) error
	// ListByMember returns one member's full event stream in chronological
	// order, ready for BuildSessions.
	ListByMember(ctx context.Context, memberID string) ([]AttendanceLog, error)
	// ListRecentByMember returns the newest limit events, still in
	// chronological order (fetched descending, reversed here so callers
	// never re-sort).
	ListRecentByMember(ctx context.Context, memberID string, limit int) ([]AttendanceLog, error)
	ListAll(ctx context.Context) ([]AttendanceLog, error)
	ListRecent(ctx context.Context, limit int) ([]AttendanceLog, error)
	DeleteLog(ctx context.Context, id string) error

	UpsertStatus(ctx context.Context, memberID string, isOnline bool, at time.Time) error
	EnsureStatus(ctx context.Context, memberID string) error
	FindAllStatus(ctx context.Context) ([]OnlineStatus, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) CreateLog(ctx context.Context, log *AttendanceLog) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`INSERT INTO attendance_logs (id, member_id, action, logged_at) VALUES ($1, $2, $3, $4)`,
			log.ID, log.MemberID, log.Action, log.LoggedAt,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) ListByMember(ctx context.Context, memberID string) ([]AttendanceLog, error) {
	var rows []AttendanceLog
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("logged_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListRecentByMember(ctx context.Context, memberID string, limit int) ([]AttendanceLog, error) {
	var rows []AttendanceLog
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("logged_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

func (r *repository) ListAll(ctx context.Context) ([]AttendanceLog, error) {
	var rows []AttendanceLog
	err := r.db.WithContext(ctx).
		Order("logged_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]AttendanceLog, error) {
	var rows []AttendanceLog
	err := r.db.WithContext(ctx).
		Preload("Member").
		Order("logged_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteLog(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AttendanceLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpsertStatus(ctx context.Context, memberID string, isOnline bool, at time.Time) error {
	mid, err := uuid.Parse(memberID)
	if err != nil {
		return errors.New("invalid member id")
	}

	column := "last_exit"
	if isOnline {
		column = "last_enter"
	}

	return r.db.WithContext(ctx).Exec(`
		INSERT INTO online_status (member_id, is_online, `+column+`, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (member_id) DO UPDATE
		SET is_online = EXCLUDED.is_online,
		    `+column+` = EXCLUDED.`+column+`,
		    updated_at = EXCLUDED.updated_at
	`, mid, isOnline, at, at).Error
}

func (r *repository) EnsureStatus(ctx context.Context, memberID string) error {
	mid, err := uuid.Parse(memberID)
	if err != nil {
		return errors.New("invalid member id")
	}

	return r.db.WithContext(ctx).Exec(`
		INSERT INTO online_status (member_id, is_online, updated_at)
		VALUES (?, false, NOW())
		ON CONFLICT (member_id) DO NOTHING
	`, mid).Error
}

func (r *repository) FindAllStatus(ctx context.Context) ([]OnlineStatus, error) {
	var rows []OnlineStatus
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}
