package member

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=member_repo.go -destination=mock/member_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	FindAll(ctx context.Context) ([]Member, error)
	UpdateStats(ctx context.Context, id string, totalHours float64, attendanceRate int) error
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

func (r *repository) Create(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Member, error) {
	var m Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	return &m, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Member, error) {
	var m Member
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	return &m, err
}

func (r *repository) FindAll(ctx context.Context) ([]Member, error) {
	var rows []Member
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateStats(ctx context.Context, id string, totalHours float64, attendanceRate int) error {
	return r.db.WithContext(ctx).
		Model(&Member{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_hours":     totalHours,
			"attendance_rate": attendanceRate,
		}).Error
}
