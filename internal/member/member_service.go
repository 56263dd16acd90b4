package member

import (
	"context"
	"errors"

	membererrors "github.com/psyoonchild719/online-library-dashboard/internal/member/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=member_service.go -destination=mock/member_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]MemberResponse, error)
	GetByID(ctx context.Context, id string) (MemberResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context) ([]MemberResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]MemberResponse, len(rows))
	for i, m := range rows {
		res[i] = MapToResponse(m)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (MemberResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return MemberResponse{}, membererrors.ErrInvalidMemberID
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MemberResponse{}, membererrors.ErrMemberNotFound
		}
		return MemberResponse{}, err
	}
	return MapToResponse(*m), nil
}

func MapToResponse(m Member) MemberResponse {
	return MemberResponse{
		ID:             m.ID.String(),
		Name:           m.Name,
		Email:          m.Email,
		Avatar:         m.Avatar,
		TotalHours:     m.TotalHours,
		AttendanceRate: m.AttendanceRate,
	}
}
