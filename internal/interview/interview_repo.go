package interview

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=interview_repo.go -destination=mock/interview_repo_mock.go -package=mock
type Repository interface {
	ListCases(ctx context.Context, filter CaseFilter) ([]Case, error)
	GetCase(ctx context.Context, id string) (*Case, error)
	CreateCase(ctx context.Context, c *Case) error
	UpdateCase(ctx context.Context, c *Case) error
	DeleteCase(ctx context.Context, id string) error

	CreateQuestion(ctx context.Context, q *Question) error
	GetQuestion(ctx context.Context, id string) (*Question, error)
	UpdateQuestion(ctx context.Context, q *Question) error
	DeleteQuestion(ctx context.Context, id string) error

	UpsertAnswer(ctx context.Context, a *Answer) error
	ListAnswersByMemberCase(ctx context.Context, memberID, caseID string) ([]Answer, error)
	DeleteAnswer(ctx context.Context, memberID, id string) error

	CreatePracticeLog(ctx context.Context, l *PracticeLog) error
	CountPracticeLogs(ctx context.Context, memberID string, since *time.Time) (int64, error)

	SeedCases(ctx context.Context, cases []Case) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListCases always preloads questions in presentation order; the simulator
// never renders a case without them.
func (r *repository) ListCases(ctx context.Context, filter CaseFilter) ([]Case, error) {
	q := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Order("created_at DESC")

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Source != "" {
		q = q.Where("source = ?", filter.Source)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	var cases []Case
	err := q.Find(&cases).Error
	return cases, err
}

func (r *repository) GetCase(ctx context.Context, id string) (*Case, error) {
	var c Case
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Where("id = ?", id).
		First(&c).Error
	return &c, err
}

func (r *repository) CreateCase(ctx context.Context, c *Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) UpdateCase(ctx context.Context, c *Case) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) DeleteCase(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Case{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateQuestion(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *repository) GetQuestion(ctx context.Context, id string) (*Question, error) {
	var q Question
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&q).Error
	return &q, err
}

func (r *repository) UpdateQuestion(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *repository) DeleteQuestion(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Question{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertAnswer overwrites the member's previous answer to the same question.
func (r *repository) UpsertAnswer(ctx context.Context, a *Answer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "member_id"}, {Name: "question_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"answer_text": a.AnswerText,
				"updated_at":  a.UpdatedAt,
			}),
		}).
		Create(a).Error
}

func (r *repository) ListAnswersByMemberCase(ctx context.Context, memberID, caseID string) ([]Answer, error) {
	var answers []Answer
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND case_id = ?", memberID, caseID).
		Order("created_at ASC").
		Find(&answers).Error
	return answers, err
}

// DeleteAnswer is scoped by member so nobody can delete someone else's
// answer through an id alone.
func (r *repository) DeleteAnswer(ctx context.Context, memberID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND member_id = ?", id, memberID).
		Delete(&Answer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreatePracticeLog(ctx context.Context, l *PracticeLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) CountPracticeLogs(ctx context.Context, memberID string, since *time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&PracticeLog{}).Where("member_id = ?", memberID)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

// SeedCases loads a batch of cases with questions atomically.
func (r *repository) SeedCases(ctx context.Context, cases []Case) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range cases {
			if err := tx.Create(&cases[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
