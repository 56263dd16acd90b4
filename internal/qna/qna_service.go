package qna

import (
	"context"
	"errors"
	"time"

	qnaerrors "github.com/psyoonchild719/online-library-dashboard/internal/qna/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=qna_service.go -destination=mock/qna_service_mock.go -package=mock
type Service interface {
	ListQuestions(ctx context.Context) ([]QuestionResponse, error)
	GetQuestion(ctx context.Context, id string) (QuestionResponse, error)
	CreateQuestion(ctx context.Context, memberID string, req CreateQuestionRequest) (QuestionResponse, error)
	ListComments(ctx context.Context, questionID string) ([]CommentResponse, error)
	AddComment(ctx context.Context, questionID, memberID string, req CreateCommentRequest) (CommentResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("qna.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("qna.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) ListQuestions(ctx context.Context) ([]QuestionResponse, error) {
	rows, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]QuestionResponse, len(rows))
	for i, q := range rows {
		res[i] = mapQuestion(&q)
		res[i].CommentCount = len(q.Comments)
	}
	return res, nil
}

func (s *service) GetQuestion(ctx context.Context, id string) (QuestionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return QuestionResponse{}, qnaerrors.ErrInvalidID
	}

	q, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuestionResponse{}, qnaerrors.ErrQuestionNotFound
		}
		return QuestionResponse{}, err
	}

	res := mapQuestion(q)

	count, err := s.repo.CountComments(ctx, id)
	if err == nil {
		res.CommentCount = int(count)
	}
	return res, nil
}

func (s *service) CreateQuestion(ctx context.Context, memberID string, req CreateQuestionRequest) (QuestionResponse, error) {
	mid, err := uuid.Parse(memberID)
	if err != nil {
		return QuestionResponse{}, qnaerrors.ErrInvalidID
	}

	q := &Question{
		ID:        uuid.New(),
		MemberID:  mid,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.CreateQuestion(ctx, q); err != nil {
		return QuestionResponse{}, err
	}
	return mapQuestion(q), nil
}

func (s *service) ListComments(ctx context.Context, questionID string) ([]CommentResponse, error) {
	if _, err := uuid.Parse(questionID); err != nil {
		return nil, qnaerrors.ErrInvalidID
	}

	rows, err := s.repo.ListComments(ctx, questionID)
	if err != nil {
		return nil, err
	}

	res := make([]CommentResponse, len(rows))
	for i, c := range rows {
		res[i] = mapComment(&c)
	}
	return res, nil
}

// AddComment verifies the question exists first so a comment can never be
// attached to a deleted or mistyped thread.
func (s *service) AddComment(ctx context.Context, questionID, memberID string, req CreateCommentRequest) (CommentResponse, error) {
	qid, err := uuid.Parse(questionID)
	if err != nil {
		return CommentResponse{}, qnaerrors.ErrInvalidID
	}
	mid, err := uuid.Parse(memberID)
	if err != nil {
		return CommentResponse{}, qnaerrors.ErrInvalidID
	}

	if _, err := s.repo.GetQuestion(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CommentResponse{}, qnaerrors.ErrQuestionNotFound
		}
		return CommentResponse{}, err
	}

	c := &Comment{
		ID:         uuid.New(),
		QuestionID: qid,
		MemberID:   mid,
		Content:    req.Content,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return CommentResponse{}, err
	}
	return mapComment(c), nil
}

func mapQuestion(q *Question) QuestionResponse {
	res := QuestionResponse{
		ID:        q.ID.String(),
		Title:     q.Title,
		Content:   q.Content,
		CreatedAt: q.CreatedAt.Format(time.RFC3339),
	}
	if q.Author != nil {
		res.Author = &AuthorResponse{
			ID:     q.Author.ID.String(),
			Name:   q.Author.Name,
			Avatar: q.Author.Avatar,
		}
	}
	return res
}

func mapComment(c *Comment) CommentResponse {
	res := CommentResponse{
		ID:         c.ID.String(),
		QuestionID: c.QuestionID.String(),
		Content:    c.Content,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
	if c.Author != nil {
		res.Author = &AuthorResponse{
			ID:     c.Author.ID.String(),
			Name:   c.Author.Name,
			Avatar: c.Author.Avatar,
		}
	}
	return res
}
