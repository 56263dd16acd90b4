package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/psyoonchild719/online-library-dashboard/internal/attendance"
	autherrors "github.com/psyoonchild719/online-library-dashboard/internal/auth/errors"
	"github.com/psyoonchild719/online-library-dashboard/internal/member"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/allowlist"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Config struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	LoginWithGoogle(ctx context.Context, idToken string) (TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	GetMe(ctx context.Context, memberID string) (MemberResponse, error)
}

type service struct {
	verifier   GoogleVerifier
	members    member.Repository
	attendance attendance.Repository
	allowList  *allowlist.AllowList
	cfg        Config
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	verifier GoogleVerifier,
	members member.Repository,
	attendanceRepo attendance.Repository,
	allowList *allowlist.AllowList,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &service{
		verifier:   verifier,
		members:    members,
		attendance: attendanceRepo,
		allowList:  allowList,
		cfg:        cfg,
		now:        time.Now,
		logger:     l,
	}
}

// LoginWithGoogle verifies the Google ID token and checks the allow list
// before touching any member data. An email outside the allow list is
// rejected with no member lookup and no provisioning side effects.
func (s *service) LoginWithGoogle(ctx context.Context, idToken string) (TokenPairResponse, error) {
	claims, err := s.verifier.Verify(idToken)
	if err != nil {
		s.logger.Warn("google token verification failed", zap.Error(err))
		return TokenPairResponse{}, autherrors.ErrInvalidGoogleToken
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	profile, ok := s.allowList.Lookup(email)
	if !ok {
		s.logger.Info("login rejected: not in allow list", zap.String("email", email))
		return TokenPairResponse{}, autherrors.ErrNotInAllowList
	}

	m, err := s.members.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m, err = s.provision(ctx, email, profile)
	}
	if err != nil {
		return TokenPairResponse{}, err
	}

	return s.issueTokens(m, profile.Role)
}

// provision creates the member row on first login. Identity comes from the
// allow list profile, not from Google: the curated name and avatar win over
// whatever the Google account carries.
func (s *service) provision(ctx context.Context, email string, profile allowlist.Profile) (*member.Member, error) {
	m := &member.Member{
		ID:     uuid.New(),
		Name:   profile.Name,
		Email:  email,
		Avatar: profile.Avatar,
	}

	if err := s.members.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := s.attendance.EnsureStatus(ctx, m.ID.String()); err != nil {
		s.logger.Warn("online status seed failed",
			zap.String("member_id", m.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("member provisioned",
		zap.String("member_id", m.ID.String()),
		zap.String("email", email),
	)
	return m, nil
}

// Refresh re-checks the allow list so a removed member loses access at the
// next token rotation, not at the natural end of their refresh token.
func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	memberID, _ := claims["member_id"].(string)
	if memberID == "" {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
		}
		return TokenPairResponse{}, err
	}

	profile, ok := s.allowList.Lookup(m.Email)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrNotInAllowList
	}

	return s.issueTokens(m, profile.Role)
}

func (s *service) GetMe(ctx context.Context, memberID string) (MemberResponse, error) {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MemberResponse{}, autherrors.ErrMemberNotFound
		}
		return MemberResponse{}, err
	}

	role := "member"
	if profile, ok := s.allowList.Lookup(m.Email); ok {
		role = profile.Role
	}

	return MemberResponse{
		ID:     m.ID.String(),
		Name:   m.Name,
		Email:  m.Email,
		Avatar: m.Avatar,
		Role:   role,
	}, nil
}

func (s *service) issueTokens(m *member.Member, role string) (TokenPairResponse, error) {
	now := s.now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ":       "access",
		"member_id": m.ID.String(),
		"email":     m.Email,
		"role":      role,
		"iat":       now.Unix(),
		"exp":       now.Add(s.cfg.AccessTTL).Unix(),
	})
	accessStr, err := access.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return TokenPairResponse{}, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ":       "refresh",
		"member_id": m.ID.String(),
		"iat":       now.Unix(),
		"exp":       now.Add(s.cfg.RefreshTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return TokenPairResponse{}, err
	}

	return TokenPairResponse{
		AccessToken:  accessStr,
		RefreshToken: refreshStr,
		Member: MemberResponse{
			ID:     m.ID.String(),
			Name:   m.Name,
			Email:  m.Email,
			Avatar: m.Avatar,
			Role:   role,
		},
	}, nil
}
