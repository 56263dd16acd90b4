package interview

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	CaseTypeMajor  = "major"
	CaseTypeEthics = "ethics"

	SourceExam      = "exam"
	SourcePredicted = "predicted"
)

// Case is one interview scenario: the clinical vignette plus its ordered
// question set.
type Case struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type      string         `gorm:"type:varchar(20);not null;index" json:"type"`
	Title     string         `gorm:"type:varchar(200);not null" json:"title"`
	Category  string         `gorm:"type:varchar(100);index" json:"category"`
	Diagnosis string         `gorm:"type:varchar(200)" json:"diagnosis"`
	Topic     string         `gorm:"type:varchar(200)" json:"topic"`
	CaseText  string         `gorm:"type:text;not null" json:"case_text"`
	Years     pq.StringArray `gorm:"type:text[]" json:"years"`
	Source    string         `gorm:"type:varchar(20);not null;index" json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Questions []Question `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Case) TableName() string { return "interview_cases" }

type Question struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"case_id"`
	Question  string         `gorm:"type:text;not null" json:"question"`
	KeyPoints pq.StringArray `gorm:"type:text[]" json:"key_points"`
	Tip       string         `gorm:"type:text" json:"tip"`
	OrderNum  int            `gorm:"not null;default:0" json:"order_num"`
	Source    string         `gorm:"type:varchar(20)" json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Question) TableName() string { return "interview_questions" }

// Answer is a member's saved answer to one question, one row per
// member+question, overwritten on re-save.
type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answers_member_question" json:"member_id"`
	CaseID     uuid.UUID `gorm:"type:uuid;not null;index" json:"case_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answers_member_question" json:"question_id"`
	AnswerText string    `gorm:"type:text;not null" json:"answer_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Answer) TableName() string { return "interview_answers" }

// PracticeLog records one completed practice run against a case.
type PracticeLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	CaseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"case_id"`
	TimeSpent int       `gorm:"not null;default:0" json:"time_spent"`
	CreatedAt time.Time `json:"created_at"`
}

func (PracticeLog) TableName() string { return "interview_logs" }
