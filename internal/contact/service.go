package contact

import (
	"context"
	"fmt"
	"strings"

	"blood_bank_backend/internal/common"

	"go.uber.org/zap"
)

// Service defines contact form operations.
type Service interface {
	Submit(ctx context.Context, req CreateRequest) (*Message, error)
	List(ctx context.Context, pq common.PageQuery) ([]Message, *common.Pagination, error)
	Count(ctx context.Context) (int64, error)
}

type serviceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &serviceImplementation{repo: repo, logger: logger}
}

func (s *serviceImplementation) Submit(ctx context.Context, req CreateRequest) (*Message, error) {
	m := &Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, common.ErrValidation.WithMessage(MsgRequiredFields)
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}
	s.logger.Info("Contact message received", zap.Uint("contactID", m.ID))
	return m, nil
}

func (s *serviceImplementation) List(ctx context.Context, pq common.PageQuery) ([]Message, *common.Pagination, error) {
	messages, total, err := s.repo.List(ctx, pq.Offset(), pq.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, common.NewPagination(total, pq.Page, pq.Limit), nil
}

func (s *serviceImplementation) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
