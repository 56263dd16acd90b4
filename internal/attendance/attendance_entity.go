package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionEnter = "enter"
	ActionExit  = "exit"
)

// AttendanceLog is one immutable fact in the append-only event log: a member
// pressed enter or exit at a point in time. Rows are never updated; deletion
// happens only through the admin endpoint and has nothing to do with the
// accounting path.
type AttendanceLog struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	MemberID  uuid.UUID  `gorm:"column:member_id;type:uuid;not null;index"`
	Action    string     `gorm:"column:action;type:varchar(10);not null"`
	LoggedAt  time.Time  `gorm:"column:logged_at;type:timestamptz;not null;index"`
	Member    *MemberRef `gorm:"foreignKey:MemberID;references:ID"`
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}

type MemberRef struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"column:name"`
	Avatar string    `gorm:"column:avatar"`
}

func (MemberRef) TableName() string {
	return "members"
}

// OnlineStatus mirrors "does this member have an open session" as a mutable
// row for fast lookup and as the table the change feed watches. The event
// log stays authoritative; drift between the two is not reconciled
// automatically.
type OnlineStatus struct {
	MemberID  uuid.UUID  `gorm:"column:member_id;type:uuid;primaryKey"`
	IsOnline  bool       `gorm:"column:is_online;not null;default:false"`
	LastEnter *time.Time `gorm:"column:last_enter;type:timestamptz"`
	LastExit  *time.Time `gorm:"column:last_exit;type:timestamptz"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (OnlineStatus) TableName() string {
	return "online_status"
}
