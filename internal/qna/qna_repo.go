package qna

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=qna_repo.go -destination=mock/qna_repo_mock.go -package=mock
type Repository interface {
	ListQuestions(ctx context.Context) ([]Question, error)
	GetQuestion(ctx context.Context, id string) (*Question, error)
	CreateQuestion(ctx context.Context, q *Question) error

	ListComments(ctx context.Context, questionID string) ([]Comment, error)
	CreateComment(ctx context.Context, c *Comment) error
	CountComments(ctx context.Context, questionID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListQuestions(ctx context.Context) ([]Question, error) {
	var rows []Question
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) GetQuestion(ctx context.Context, id string) (*Question, error) {
	var q Question
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&q).Error
	return &q, err
}

func (r *repository) CreateQuestion(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *repository) ListComments(ctx context.Context, questionID string) ([]Comment, error) {
	var rows []Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("question_id = ?", questionID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateComment(ctx context.Context, c *Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) CountComments(ctx context.Context, questionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Comment{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return count, err
}
