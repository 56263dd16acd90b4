package interview

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	interviewerrors "github.com/psyoonchild719/online-library-dashboard/internal/interview/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeInterviewRepo struct {
	cases        map[string]*Case
	listCalls    int
	listResult   []Case
	questions    map[string]*Question
	answers      []*Answer
	practiceLogs []*PracticeLog
	seeded       []Case
	todayCount   int64
	totalCount   int64
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{
		cases:     make(map[string]*Case),
		questions: make(map[string]*Question),
	}
}

func (f *fakeInterviewRepo) ListCases(ctx context.Context, filter CaseFilter) ([]Case, error) {
	f.listCalls++
	return f.listResult, nil
}

func (f *fakeInterviewRepo) GetCase(ctx context.Context, id string) (*Case, error) {
	if c, ok := f.cases[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInterviewRepo) CreateCase(ctx context.Context, c *Case) error {
	f.cases[c.ID.String()] = c
	return nil
}

func (f *fakeInterviewRepo) UpdateCase(ctx context.Context, c *Case) error {
	f.cases[c.ID.String()] = c
	return nil
}

func (f *fakeInterviewRepo) DeleteCase(ctx context.Context, id string) error {
	if _, ok := f.cases[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.cases, id)
	return nil
}

func (f *fakeInterviewRepo) CreateQuestion(ctx context.Context, q *Question) error {
	f.questions[q.ID.String()] = q
	return nil
}

func (f *fakeInterviewRepo) GetQuestion(ctx context.Context, id string) (*Question, error) {
	if q, ok := f.questions[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInterviewRepo) UpdateQuestion(ctx context.Context, q *Question) error {
	f.questions[q.ID.String()] = q
	return nil
}

func (f *fakeInterviewRepo) DeleteQuestion(ctx context.Context, id string) error {
	if _, ok := f.questions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeInterviewRepo) UpsertAnswer(ctx context.Context, a *Answer) error {
	for i, existing := range f.answers {
		if existing.MemberID == a.MemberID && existing.QuestionID == a.QuestionID {
			f.answers[i] = a
			return nil
		}
	}
	f.answers = append(f.answers, a)
	return nil
}

func (f *fakeInterviewRepo) ListAnswersByMemberCase(ctx context.Context, memberID, caseID string) ([]Answer, error) {
	var out []Answer
	for _, a := range f.answers {
		if a.MemberID.String() == memberID && a.CaseID.String() == caseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) DeleteAnswer(ctx context.Context, memberID, id string) error {
	for i, a := range f.answers {
		if a.ID.String() == id && a.MemberID.String() == memberID {
			f.answers = append(f.answers[:i], f.answers[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeInterviewRepo) CreatePracticeLog(ctx context.Context, l *PracticeLog) error {
	f.practiceLogs = append(f.practiceLogs, l)
	return nil
}

func (f *fakeInterviewRepo) CountPracticeLogs(ctx context.Context, memberID string, since *time.Time) (int64, error) {
	if since != nil {
		return f.todayCount, nil
	}
	return f.totalCount, nil
}

func (f *fakeInterviewRepo) SeedCases(ctx context.Context, cases []Case) error {
	f.seeded = cases
	return nil
}

func TestListCases_CacheMissQueriesOnce(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	repo := newFakeInterviewRepo()
	repo.listResult = []Case{{ID: uuid.New(), Type: CaseTypeMajor, Title: "Panic disorder", Source: SourceExam}}

	key := cacheKey(CaseFilter{Type: CaseTypeMajor})
	payload, err := json.Marshal(repo.listResult)
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, payload, caseCacheTTL).SetVal("OK")

	svc := NewService(repo, rdb, time.UTC)

	cases, err := svc.ListCases(context.Background(), CaseFilter{Type: CaseTypeMajor})
	require.NoError(t, err)

	require.Len(t, cases, 1)
	assert.Equal(t, "Panic disorder", cases[0].Title)
	assert.Equal(t, 1, repo.listCalls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListCases_CacheHitSkipsRepository(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cached := []Case{{ID: uuid.New(), Type: CaseTypeEthics, Title: "Dual relationship"}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	key := cacheKey(CaseFilter{Type: CaseTypeEthics})
	mock.ExpectGet(key).SetVal(string(payload))

	repo := newFakeInterviewRepo()
	svc := NewService(repo, rdb, time.UTC)

	cases, err := svc.ListCases(context.Background(), CaseFilter{Type: CaseTypeEthics})
	require.NoError(t, err)

	require.Len(t, cases, 1)
	assert.Equal(t, "Dual relationship", cases[0].Title)
	assert.Zero(t, repo.listCalls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCase_InvalidatesCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	staleKey := cacheKey(CaseFilter{Type: CaseTypeMajor})
	mock.ExpectScan(0, caseCachePrefix+"*", 100).SetVal([]string{staleKey}, 0)
	mock.ExpectDel(staleKey).SetVal(1)

	repo := newFakeInterviewRepo()
	svc := NewService(repo, rdb, time.UTC)

	created, err := svc.CreateCase(context.Background(), CreateCaseRequest{
		Type:     CaseTypeMajor,
		Title:    "MDD with psychotic features",
		CaseText: "A 34-year-old presents with...",
		Source:   SourcePredicted,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Contains(t, repo.cases, created.ID.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCase_PartialUpdate(t *testing.T) {
	repo := newFakeInterviewRepo()
	existing := &Case{ID: uuid.New(), Type: CaseTypeMajor, Title: "Old title", CaseText: "text", Source: SourceExam}
	repo.cases[existing.ID.String()] = existing

	svc := NewService(repo, nil, time.UTC)

	newTitle := "New title"
	updated, err := svc.UpdateCase(context.Background(), existing.ID.String(), UpdateCaseRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, CaseTypeMajor, updated.Type)
	assert.Equal(t, SourceExam, updated.Source)
}

func TestGetCase_NotFound(t *testing.T) {
	svc := NewService(newFakeInterviewRepo(), nil, time.UTC)

	_, err := svc.GetCase(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, interviewerrors.ErrCaseNotFound)

	_, err = svc.GetCase(context.Background(), "garbage")
	assert.ErrorIs(t, err, interviewerrors.ErrInvalidID)
}

func TestSaveAnswer_OverwritesPrevious(t *testing.T) {
	repo := newFakeInterviewRepo()
	svc := NewService(repo, nil, time.UTC)

	memberID := uuid.NewString()
	req := UpsertAnswerRequest{
		CaseID:     uuid.NewString(),
		QuestionID: uuid.NewString(),
		AnswerText: "First attempt",
	}

	_, err := svc.SaveAnswer(context.Background(), memberID, req)
	require.NoError(t, err)

	req.AnswerText = "Second attempt"
	_, err = svc.SaveAnswer(context.Background(), memberID, req)
	require.NoError(t, err)

	require.Len(t, repo.answers, 1)
	assert.Equal(t, "Second attempt", repo.answers[0].AnswerText)
}

func TestLogPractice_And_Stats(t *testing.T) {
	repo := newFakeInterviewRepo()
	repo.todayCount = 3
	repo.totalCount = 12

	svc := NewService(repo, nil, time.UTC)

	memberID := uuid.NewString()
	_, err := svc.LogPractice(context.Background(), memberID, PracticeLogRequest{
		CaseID:    uuid.NewString(),
		TimeSpent: 540,
	})
	require.NoError(t, err)
	require.Len(t, repo.practiceLogs, 1)
	assert.Equal(t, 540, repo.practiceLogs[0].TimeSpent)

	stats, err := svc.GetPracticeStats(context.Background(), memberID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TodayCount)
	assert.Equal(t, 12, stats.TotalCount)
}

func TestSeed_LinksQuestionsToCases(t *testing.T) {
	repo := newFakeInterviewRepo()
	svc := NewService(repo, nil, time.UTC)

	count, err := svc.Seed(context.Background(), SeedRequest{
		Cases: []SeedCase{
			{
				CreateCaseRequest: CreateCaseRequest{
					Type:     CaseTypeMajor,
					Title:    "GAD",
					CaseText: "vignette",
					Source:   SourceExam,
				},
				Questions: []QuestionRequest{
					{Question: "What is the diagnosis?", OrderNum: 1},
					{Question: "Differential?", OrderNum: 2},
				},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, repo.seeded, 1)
	seeded := repo.seeded[0]
	require.Len(t, seeded.Questions, 2)
	for _, q := range seeded.Questions {
		assert.Equal(t, seeded.ID, q.CaseID)
	}
}
