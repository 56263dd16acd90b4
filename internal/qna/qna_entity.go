package qna

import (
	"time"

	"github.com/google/uuid"
	"github.com/psyoonchild719/online-library-dashboard/internal/member"
)

type Question struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Content   string    `gorm:"type:varchar(2000);not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Author   *member.Member `gorm:"foreignKey:MemberID" json:"author,omitempty"`
	Comments []Comment      `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (Question) TableName() string { return "questions" }

type Comment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	MemberID   uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`

	Author *member.Member `gorm:"foreignKey:MemberID" json:"author,omitempty"`
}

func (Comment) TableName() string { return "comments" }
