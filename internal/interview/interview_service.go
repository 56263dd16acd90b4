package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	interviewerrors "github.com/psyoonchild719/online-library-dashboard/internal/interview/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	caseCachePrefix = "interview:cases:"
	caseCacheTTL    = 10 * time.Minute
)

//go:generate mockgen -source=interview_service.go -destination=mock/interview_service_mock.go -package=mock
type Service interface {
	ListCases(ctx context.Context, filter CaseFilter) ([]Case, error)
	GetCase(ctx context.Context, id string) (*Case, error)
	CreateCase(ctx context.Context, req CreateCaseRequest) (*Case, error)
	UpdateCase(ctx context.Context, id string, req UpdateCaseRequest) (*Case, error)
	DeleteCase(ctx context.Context, id string) error

	AddQuestion(ctx context.Context, caseID string, req QuestionRequest) (*Question, error)
	UpdateQuestion(ctx context.Context, id string, req QuestionRequest) (*Question, error)
	DeleteQuestion(ctx context.Context, id string) error

	SaveAnswer(ctx context.Context, memberID string, req UpsertAnswerRequest) (*Answer, error)
	ListAnswers(ctx context.Context, memberID, caseID string) ([]Answer, error)
	DeleteAnswer(ctx context.Context, memberID, id string) error

	LogPractice(ctx context.Context, memberID string, req PracticeLogRequest) (*PracticeLog, error)
	GetPracticeStats(ctx context.Context, memberID string) (PracticeStatsResponse, error)

	Seed(ctx context.Context, req SeedRequest) (int, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     singleflight.Group
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("interview.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("interview.service")
	}
	if loc == nil {
		loc = time.Local
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		loc:    loc,
		now:    time.Now,
		logger: l,
	}
}

func cacheKey(filter CaseFilter) string {
	return fmt.Sprintf("%s%s:%s:%s", caseCachePrefix, filter.Type, filter.Source, filter.Category)
}

// ListCases serves from Redis when possible and collapses concurrent misses
// for the same filter into a single database query. A cold cache during an
// exam-prep session means every member fetches the full deck at once.
func (s *service) ListCases(ctx context.Context, filter CaseFilter) ([]Case, error) {
	key := cacheKey(filter)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cases []Case
			if err := json.Unmarshal([]byte(cached), &cases); err == nil {
				return cases, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		cases, err := s.repo.ListCases(ctx, filter)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(cases); err == nil {
				if err := s.rdb.Set(ctx, key, payload, caseCacheTTL).Err(); err != nil {
					s.logger.Warn("case cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return cases, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Case), nil
}

func (s *service) GetCase(ctx context.Context, id string) (*Case, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, interviewerrors.ErrInvalidID
	}

	c, err := s.repo.GetCase(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interviewerrors.ErrCaseNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) CreateCase(ctx context.Context, req CreateCaseRequest) (*Case, error) {
	c := &Case{
		ID:        uuid.New(),
		Type:      req.Type,
		Title:     req.Title,
		Category:  req.Category,
		Diagnosis: req.Diagnosis,
		Topic:     req.Topic,
		CaseText:  req.CaseText,
		Years:     req.Years,
		Source:    req.Source,
	}

	if err := s.repo.CreateCase(ctx, c); err != nil {
		return nil, err
	}

	s.invalidateCaseCache(ctx)
	return c, nil
}

func (s *service) UpdateCase(ctx context.Context, id string, req UpdateCaseRequest) (*Case, error) {
	c, err := s.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		c.Type = *req.Type
	}
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Category != nil {
		c.Category = *req.Category
	}
	if req.Diagnosis != nil {
		c.Diagnosis = *req.Diagnosis
	}
	if req.Topic != nil {
		c.Topic = *req.Topic
	}
	if req.CaseText != nil {
		c.CaseText = *req.CaseText
	}
	if req.Years != nil {
		c.Years = *req.Years
	}
	if req.Source != nil {
		c.Source = *req.Source
	}

	if err := s.repo.UpdateCase(ctx, c); err != nil {
		return nil, err
	}

	s.invalidateCaseCache(ctx)
	return c, nil
}

func (s *service) DeleteCase(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return interviewerrors.ErrInvalidID
	}

	if err := s.repo.DeleteCase(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return interviewerrors.ErrCaseNotFound
		}
		return err
	}

	s.invalidateCaseCache(ctx)
	return nil
}

func (s *service) AddQuestion(ctx context.Context, caseID string, req QuestionRequest) (*Question, error) {
	c, err := s.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	q := &Question{
		ID:        uuid.New(),
		CaseID:    c.ID,
		Question:  req.Question,
		KeyPoints: req.KeyPoints,
		Tip:       req.Tip,
		OrderNum:  req.OrderNum,
		Source:    req.Source,
	}

	if err := s.repo.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}

	s.invalidateCaseCache(ctx)
	return q, nil
}

func (s *service) UpdateQuestion(ctx context.Context, id string, req QuestionRequest) (*Question, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, interviewerrors.ErrInvalidID
	}

	q, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interviewerrors.ErrQuestionNotFound
		}
		return nil, err
	}

	q.Question = req.Question
	q.KeyPoints = req.KeyPoints
	q.Tip = req.Tip
	q.OrderNum = req.OrderNum
	q.Source = req.Source

	if err := s.repo.UpdateQuestion(ctx, q); err != nil {
		return nil, err
	}

	s.invalidateCaseCache(ctx)
	return q, nil
}

func (s *service) DeleteQuestion(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return interviewerrors.ErrInvalidID
	}

	if err := s.repo.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return interviewerrors.ErrQuestionNotFound
		}
		return err
	}

	s.invalidateCaseCache(ctx)
	return nil
}

func (s *service) SaveAnswer(ctx context.Context, memberID string, req UpsertAnswerRequest) (*Answer, error) {
	mid, err := uuid.Parse(memberID)
	if err != nil {
		return nil, interviewerrors.ErrInvalidID
	}
	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		return nil, interviewerrors.ErrInvalidID
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return nil, interviewerrors.ErrInvalidID
	}

	now := s.now().UTC()
	a := &Answer{
		ID:         uuid.New(),
		MemberID:   mid,
		CaseID:     caseID,
		QuestionID: questionID,
		AnswerText: req.AnswerText,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.UpsertAnswer(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) ListAnswers(ctx context.Context, memberID, caseID string) ([]Answer, error) {
	if _, err := uuid.Parse(memberID); err != nil {
		return nil, interviewerrors.ErrInvalidID
	}
	if _, err := uuid.Parse(caseID); err != nil {
		return nil, interviewerrors.ErrInvalidID
	}
	return s.repo.ListAnswersByMemberCase(ctx, memberID, caseID)
}

func (s *service) DeleteAnswer(ctx context.Context, memberID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return interviewerrors.ErrInvalidID
	}

	if err := s.repo.DeleteAnswer(ctx, memberID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return interviewerrors.ErrAnswerNotFound
		}
		return err
	}
	return nil
}

func (s *service) LogPractice(ctx context.Context, memberID string, req PracticeLogRequest) (*PracticeLog, error) {
	mid, err := uuid.Parse(memberID)
	if err != nil {
		return nil, interviewerrors.ErrInvalidID
	}
	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		return nil, interviewerrors.ErrInvalidID
	}

	l := &PracticeLog{
		ID:        uuid.New(),
		MemberID:  mid,
		CaseID:    caseID,
		TimeSpent: req.TimeSpent,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.CreatePracticeLog(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetPracticeStats(ctx context.Context, memberID string) (PracticeStatsResponse, error) {
	if _, err := uuid.Parse(memberID); err != nil {
		return PracticeStatsResponse{}, interviewerrors.ErrInvalidID
	}

	total, err := s.repo.CountPracticeLogs(ctx, memberID, nil)
	if err != nil {
		return PracticeStatsResponse{}, err
	}

	nowLocal := s.now().In(s.loc)
	midnight := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, s.loc)

	today, err := s.repo.CountPracticeLogs(ctx, memberID, &midnight)
	if err != nil {
		return PracticeStatsResponse{}, err
	}

	return PracticeStatsResponse{
		TodayCount: int(today),
		TotalCount: int(total),
	}, nil
}

// Seed loads a batch of cases with their questions in one transaction and
// returns how many cases were created.
func (s *service) Seed(ctx context.Context, req SeedRequest) (int, error) {
	cases := make([]Case, 0, len(req.Cases))
	for _, sc := range req.Cases {
		c := Case{
			ID:        uuid.New(),
			Type:      sc.Type,
			Title:     sc.Title,
			Category:  sc.Category,
			Diagnosis: sc.Diagnosis,
			Topic:     sc.Topic,
			CaseText:  sc.CaseText,
			Years:     sc.Years,
			Source:    sc.Source,
		}
		for _, sq := range sc.Questions {
			c.Questions = append(c.Questions, Question{
				ID:        uuid.New(),
				CaseID:    c.ID,
				Question:  sq.Question,
				KeyPoints: sq.KeyPoints,
				Tip:       sq.Tip,
				OrderNum:  sq.OrderNum,
				Source:    sq.Source,
			})
		}
		cases = append(cases, c)
	}

	if err := s.repo.SeedCases(ctx, cases); err != nil {
		return 0, err
	}

	s.invalidateCaseCache(ctx)
	return len(cases), nil
}

// invalidateCaseCache drops every cached case list. Filter keys are few and
// known-prefixed, so a scan-and-delete keeps mutations simple.
func (s *service) invalidateCaseCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}

	iter := s.rdb.Scan(ctx, 0, caseCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("case cache invalidation failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("case cache scan failed", zap.Error(err))
	}
}
