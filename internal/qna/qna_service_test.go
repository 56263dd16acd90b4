package qna

import (
	"context"
	"testing"
	"time"

	"github.com/psyoonchild719/online-library-dashboard/internal/member"
	qnaerrors "github.com/psyoonchild719/online-library-dashboard/internal/qna/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeQnaRepo struct {
	questions map[string]*Question
	comments  map[string][]Comment
}

func newFakeQnaRepo() *fakeQnaRepo {
	return &fakeQnaRepo{
		questions: make(map[string]*Question),
		comments:  make(map[string][]Comment),
	}
}

func (f *fakeQnaRepo) ListQuestions(ctx context.Context) ([]Question, error) {
	var out []Question
	for _, q := range f.questions {
		copied := *q
		copied.Comments = f.comments[q.ID.String()]
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeQnaRepo) GetQuestion(ctx context.Context, id string) (*Question, error) {
	if q, ok := f.questions[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQnaRepo) CreateQuestion(ctx context.Context, q *Question) error {
	f.questions[q.ID.String()] = q
	return nil
}

func (f *fakeQnaRepo) ListComments(ctx context.Context, questionID string) ([]Comment, error) {
	return f.comments[questionID], nil
}

func (f *fakeQnaRepo) CreateComment(ctx context.Context, c *Comment) error {
	key := c.QuestionID.String()
	f.comments[key] = append(f.comments[key], *c)
	return nil
}

func (f *fakeQnaRepo) CountComments(ctx context.Context, questionID string) (int64, error) {
	return int64(len(f.comments[questionID])), nil
}

func TestCreateQuestion(t *testing.T) {
	repo := newFakeQnaRepo()
	svc := NewService(repo)

	memberID := uuid.NewString()
	res, err := svc.CreateQuestion(context.Background(), memberID, CreateQuestionRequest{
		Title:   "Rorschach scoring",
		Content: "How strict is scoring on the practical?",
	})
	require.NoError(t, err)

	assert.Equal(t, "Rorschach scoring", res.Title)
	assert.Contains(t, repo.questions, res.ID)
}

func TestCreateQuestion_InvalidMember(t *testing.T) {
	svc := NewService(newFakeQnaRepo())

	_, err := svc.CreateQuestion(context.Background(), "nope", CreateQuestionRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, qnaerrors.ErrInvalidID)
}

func TestAddComment_RequiresExistingQuestion(t *testing.T) {
	repo := newFakeQnaRepo()
	svc := NewService(repo)

	_, err := svc.AddComment(context.Background(), uuid.NewString(), uuid.NewString(), CreateCommentRequest{Content: "hello"})
	assert.ErrorIs(t, err, qnaerrors.ErrQuestionNotFound)
}

func TestAddComment_ThreadsUnderQuestion(t *testing.T) {
	repo := newFakeQnaRepo()
	author := &member.Member{ID: uuid.New(), Name: "Kim"}
	q := &Question{ID: uuid.New(), MemberID: author.ID, Title: "t", Content: "c", Author: author, CreatedAt: time.Now()}
	repo.questions[q.ID.String()] = q

	svc := NewService(repo)

	res, err := svc.AddComment(context.Background(), q.ID.String(), uuid.NewString(), CreateCommentRequest{Content: "first reply"})
	require.NoError(t, err)
	assert.Equal(t, q.ID.String(), res.QuestionID)

	comments, err := svc.ListComments(context.Background(), q.ID.String())
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first reply", comments[0].Content)

	detail, err := svc.GetQuestion(context.Background(), q.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, detail.CommentCount)
}
