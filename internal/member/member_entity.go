package member

import (
	"time"

	"github.com/google/uuid"
)

// Member is the identity record for one study-group participant. Rows are
// created on first successful login by an allow-listed email and never
// deleted.
//
// TotalHours and AttendanceRate are caches of values derived from the
// attendance event log. The log is the source of truth; these fields are
// refreshed best-effort (on exit and by the stats consumer) and may lag a
// full recomputation until the next refresh.
type Member struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"column:name;type:varchar(50);not null"`
	Email          string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Avatar         string    `gorm:"column:avatar;type:varchar(255)"`
	TotalHours     float64   `gorm:"column:total_hours;not null;default:0"`
	AttendanceRate int       `gorm:"column:attendance_rate;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Member) TableName() string {
	return "members"
}
