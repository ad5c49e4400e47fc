package volunteer

import (
	"context"
	"fmt"
	"strings"

	"blood_bank_backend/internal/common"

	"go.uber.org/zap"
)

// Service defines volunteer operations.
type Service interface {
	SignUp(ctx context.Context, req CreateRequest) (*Volunteer, error)
	List(ctx context.Context, pq common.PageQuery) ([]Volunteer, *common.Pagination, error)
	Count(ctx context.Context) (int64, error)
}

type serviceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new volunteer service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &serviceImplementation{repo: repo, logger: logger}
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func (s *serviceImplementation) SignUp(ctx context.Context, req CreateRequest) (*Volunteer, error) {
	name, email := strings.TrimSpace(req.Name), strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, common.ErrValidation.WithMessage(MsgRequiredFields)
	}
	v := &Volunteer{
		Name:     name,
		Email:    email,
		Phone:    optional(req.Phone),
		Location: optional(req.Location),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to store volunteer: %w", err)
	}
	s.logger.Info("Volunteer signed up", zap.Uint("volunteerID", v.ID))
	return v, nil
}

func (s *serviceImplementation) List(ctx context.Context, pq common.PageQuery) ([]Volunteer, *common.Pagination, error) {
	volunteers, total, err := s.repo.List(ctx, pq.Offset(), pq.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	return volunteers, common.NewPagination(total, pq.Page, pq.Limit), nil
}

func (s *serviceImplementation) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
