package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/psyoonchild719/online-library-dashboard/internal/attendance"
	autherrors "github.com/psyoonchild719/online-library-dashboard/internal/auth/errors"
	"github.com/psyoonchild719/online-library-dashboard/internal/member"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/allowlist"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeVerifier struct {
	claims GoogleClaims
	err    error
}

func (f *fakeVerifier) Verify(idToken string) (GoogleClaims, error) {
	return f.claims, f.err
}

type fakeMemberRepo struct {
	byEmail   map[string]*member.Member
	byID      map[string]*member.Member
	created   []*member.Member
	lookups   int
	createErr error
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		byEmail: make(map[string]*member.Member),
		byID:    make(map[string]*member.Member),
	}
}

func (f *fakeMemberRepo) add(m *member.Member) {
	f.byEmail[m.Email] = m
	f.byID[m.ID.String()] = m
}

func (f *fakeMemberRepo) WithTx(tx *sql.Tx) member.Repository { return f }

func (f *fakeMemberRepo) Create(ctx context.Context, m *member.Member) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, m)
	f.add(m)
	return nil
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id string) (*member.Member, error) {
	f.lookups++
	if m, ok := f.byID[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMemberRepo) GetByEmail(ctx context.Context, email string) (*member.Member, error) {
	f.lookups++
	if m, ok := f.byEmail[email]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMemberRepo) FindAll(ctx context.Context) ([]member.Member, error) { return nil, nil }

func (f *fakeMemberRepo) UpdateStats(ctx context.Context, id string, totalHours float64, attendanceRate int) error {
	return nil
}

type fakeStatusRepo struct {
	attendance.Repository
	ensured []string
}

func (f *fakeStatusRepo) EnsureStatus(ctx context.Context, memberID string) error {
	f.ensured = append(f.ensured, memberID)
	return nil
}

func testAllowList() *allowlist.AllowList {
	return allowlist.New(map[string]allowlist.Profile{
		"kim@example.com": {Name: "Kim", Avatar: "🦊", Role: "admin"},
		"lee@example.com": {Name: "Lee", Avatar: "🐢"},
	})
}

func newTestService(verifier GoogleVerifier, members *fakeMemberRepo, status *fakeStatusRepo) Service {
	return NewService(verifier, members, status, testAllowList(), Config{
		JWTSecret:  "test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
}

func TestLoginWithGoogle_RejectsUnlistedEmailBeforeMemberLookup(t *testing.T) {
	verifier := &fakeVerifier{claims: GoogleClaims{Email: "stranger@example.com", Name: "Stranger"}}
	members := newFakeMemberRepo()
	status := &fakeStatusRepo{}

	svc := newTestService(verifier, members, status)

	_, err := svc.LoginWithGoogle(context.Background(), "some-google-token")
	assert.ErrorIs(t, err, autherrors.ErrNotInAllowList)

	// The rejection path must never reach member storage.
	assert.Zero(t, members.lookups)
	assert.Empty(t, members.created)
	assert.Empty(t, status.ensured)
}

func TestLoginWithGoogle_InvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("signature mismatch")}
	members := newFakeMemberRepo()

	svc := newTestService(verifier, members, &fakeStatusRepo{})

	_, err := svc.LoginWithGoogle(context.Background(), "bad-token")
	assert.ErrorIs(t, err, autherrors.ErrInvalidGoogleToken)
	assert.Zero(t, members.lookups)
}

func TestLoginWithGoogle_ProvisionsOnFirstLogin(t *testing.T) {
	verifier := &fakeVerifier{claims: GoogleClaims{Email: "Kim@Example.com", Name: "Google Display Name", Picture: "http://g/pic"}}
	members := newFakeMemberRepo()
	status := &fakeStatusRepo{}

	svc := newTestService(verifier, members, status)

	res, err := svc.LoginWithGoogle(context.Background(), "token")
	require.NoError(t, err)

	require.Len(t, members.created, 1)
	created := members.created[0]
	// Curated profile wins over the Google account's own name.
	assert.Equal(t, "Kim", created.Name)
	assert.Equal(t, "🦊", created.Avatar)
	assert.Equal(t, "kim@example.com", created.Email)

	require.Len(t, status.ensured, 1)
	assert.Equal(t, created.ID.String(), status.ensured[0])

	assert.Equal(t, "Kim", res.Member.Name)
	assert.Equal(t, "admin", res.Member.Role)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
}

func TestLoginWithGoogle_ExistingMemberNotReprovisioned(t *testing.T) {
	existing := &member.Member{ID: uuid.New(), Name: "Lee", Email: "lee@example.com", Avatar: "🐢"}
	members := newFakeMemberRepo()
	members.add(existing)

	verifier := &fakeVerifier{claims: GoogleClaims{Email: "lee@example.com"}}
	status := &fakeStatusRepo{}

	svc := newTestService(verifier, members, status)

	res, err := svc.LoginWithGoogle(context.Background(), "token")
	require.NoError(t, err)

	assert.Empty(t, members.created)
	assert.Empty(t, status.ensured)
	assert.Equal(t, existing.ID.String(), res.Member.ID)
	assert.Equal(t, "member", res.Member.Role)
}

func TestLoginWithGoogle_AccessTokenClaims(t *testing.T) {
	verifier := &fakeVerifier{claims: GoogleClaims{Email: "kim@example.com"}}
	members := newFakeMemberRepo()

	svc := newTestService(verifier, members, &fakeStatusRepo{})

	res, err := svc.LoginWithGoogle(context.Background(), "token")
	require.NoError(t, err)

	token, err := jwt.Parse(res.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)

	assert.Equal(t, "access", claims["typ"])
	assert.Equal(t, "kim@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, res.Member.ID, claims["member_id"])
}

func TestRefresh_RotatesTokens(t *testing.T) {
	existing := &member.Member{ID: uuid.New(), Name: "Kim", Email: "kim@example.com"}
	members := newFakeMemberRepo()
	members.add(existing)

	svc := newTestService(&fakeVerifier{claims: GoogleClaims{Email: "kim@example.com"}}, members, &fakeStatusRepo{})

	login, err := svc.LoginWithGoogle(context.Background(), "token")
	require.NoError(t, err)

	res, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, existing.ID.String(), res.Member.ID)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	existing := &member.Member{ID: uuid.New(), Name: "Kim", Email: "kim@example.com"}
	members := newFakeMemberRepo()
	members.add(existing)

	svc := newTestService(&fakeVerifier{claims: GoogleClaims{Email: "kim@example.com"}}, members, &fakeStatusRepo{})

	login, err := svc.LoginWithGoogle(context.Background(), "token")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestRefresh_RevokedMemberLosesAccess(t *testing.T) {
	// A member present in storage but no longer on the allow list.
	revoked := &member.Member{ID: uuid.New(), Name: "Park", Email: "park@example.com"}
	members := newFakeMemberRepo()
	members.add(revoked)

	svc := newTestService(&fakeVerifier{}, members, &fakeStatusRepo{}).(*service)

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ":       "refresh",
		"member_id": revoked.ID.String(),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	refreshStr, err := refresh.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), refreshStr)
	assert.ErrorIs(t, err, autherrors.ErrNotInAllowList)
}

func TestGetMe(t *testing.T) {
	existing := &member.Member{ID: uuid.New(), Name: "Lee", Email: "lee@example.com", Avatar: "🐢"}
	members := newFakeMemberRepo()
	members.add(existing)

	svc := newTestService(&fakeVerifier{}, members, &fakeStatusRepo{})

	res, err := svc.GetMe(context.Background(), existing.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Lee", res.Name)
	assert.Equal(t, "member", res.Role)

	_, err = svc.GetMe(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, autherrors.ErrMemberNotFound)
}
