package bloodrequest

import (
	"context"
	"fmt"
	"strings"

	"blood_bank_backend/internal/common"
	"blood_bank_backend/internal/domain"

	"go.uber.org/zap"
)

// Service defines blood request operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest, userID *uint) (*BloodRequest, error)
	List(ctx context.Context, filter Filter) ([]BloodRequest, error)
	GetByID(ctx context.Context, id uint) (*BloodRequest, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*BloodRequest, error)
	ListForUser(ctx context.Context, userID uint) ([]BloodRequest, error)
	AdminList(ctx context.Context, filter Filter, pq common.PageQuery) ([]BloodRequest, *common.Pagination, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter Filter) (int64, error)
	Recent(ctx context.Context, n int) ([]BloodRequest, error)
	OpenRequestDigest(ctx context.Context) (map[Urgency]int64, error)
}

type serviceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new blood request service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &serviceImplementation{repo: repo, logger: logger}
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func normalizeFilter(filter Filter) Filter {
	return Filter{
		BloodGroup: domain.NormalizeBloodGroup(filter.BloodGroup),
		Province:   strings.TrimSpace(filter.Province),
		Status:     strings.TrimSpace(filter.Status),
		Urgency:    strings.TrimSpace(filter.Urgency),
	}
}

// Create validates and stores a new request. userID is nil for anonymous callers.
func (s *serviceImplementation) Create(ctx context.Context, req CreateRequest, userID *uint) (*BloodRequest, error) {
	patientName := strings.TrimSpace(req.PatientName)
	hospital := strings.TrimSpace(req.Hospital)
	contactPhone := strings.TrimSpace(req.ContactPhone)
	bloodGroup := domain.NormalizeBloodGroup(req.BloodGroup)
	if patientName == "" || bloodGroup == "" || !req.UnitsNeeded.Set || hospital == "" || contactPhone == "" {
		return nil, common.ErrValidation.WithMessage(MsgRequiredFields)
	}
	if req.UnitsNeeded.Value < 1 {
		return nil, common.ErrValidation.WithMessage(MsgInvalidUnits)
	}
	if !domain.IsValidBloodGroup(bloodGroup) {
		return nil, common.ErrValidation.WithMessage(MsgInvalidBloodGroup)
	}
	urgency := UrgencyNormal
	if u := strings.TrimSpace(req.Urgency); u != "" {
		urgency = Urgency(u)
		if !urgency.IsValid() {
			return nil, common.ErrValidation.WithMessage(MsgInvalidUrgency)
		}
	}

	record := &BloodRequest{
		PatientName:    patientName,
		BloodGroup:     bloodGroup,
		UnitsNeeded:    req.UnitsNeeded.Value,
		Hospital:       hospital,
		Province:       optionalString(req.Province),
		City:           optionalString(req.City),
		ContactName:    optionalString(req.ContactName),
		ContactPhone:   contactPhone,
		ContactEmail:   optionalString(req.ContactEmail),
		Urgency:        urgency,
		Status:         StatusPending,
		AdditionalInfo: optionalString(req.AdditionalInfo),
		UserID:         userID,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create blood request: %w", err)
	}

	fields := []zap.Field{
		zap.Uint("requestID", record.ID),
		zap.String("bloodGroup", record.BloodGroup),
		zap.String("urgency", string(record.Urgency)),
	}
	if userID != nil {
		fields = append(fields, zap.Uint("userID", *userID))
	}
	s.logger.Info("Blood request created", fields...)
	return record, nil
}

// List returns the newest public requests matching filter, capped at common.PublicListCap.
func (s *serviceImplementation) List(ctx context.Context, filter Filter) ([]BloodRequest, error) {
	requests, _, err := s.repo.List(ctx, normalizeFilter(filter), 0, common.PublicListCap)
	if err != nil {
		return nil, fmt.Errorf("failed to list blood requests: %w", err)
	}
	return requests, nil
}

func (s *serviceImplementation) GetByID(ctx context.Context, id uint) (*BloodRequest, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateStatus sets a new status. No transition order is enforced.
func (s *serviceImplementation) UpdateStatus(ctx context.Context, id uint, status string) (*BloodRequest, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, common.ErrValidation.WithMessage(MsgStatusRequired)
	}
	next := Status(status)
	if !next.IsValid() {
		return nil, common.ErrValidation.WithMessage(MsgInvalidStatus)
	}
	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Blood request status updated", zap.Uint("requestID", id), zap.String("status", status))
	return updated, nil
}

func (s *serviceImplementation) ListForUser(ctx context.Context, userID uint) ([]BloodRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *serviceImplementation) AdminList(ctx context.Context, filter Filter, pq common.PageQuery) ([]BloodRequest, *common.Pagination, error) {
	requests, total, err := s.repo.List(ctx, normalizeFilter(filter), pq.Offset(), pq.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list blood requests: %w", err)
	}
	return requests, common.NewPagination(total, pq.Page, pq.Limit), nil
}

func (s *serviceImplementation) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Blood request deleted", zap.Uint("requestID", id))
	return nil
}

func (s *serviceImplementation) Count(ctx context.Context, filter Filter) (int64, error) {
	return s.repo.Count(ctx, normalizeFilter(filter))
}

func (s *serviceImplementation) Recent(ctx context.Context, n int) ([]BloodRequest, error) {
	requests, _, err := s.repo.List(ctx, Filter{}, 0, n)
	return requests, err
}

func (s *serviceImplementation) OpenRequestDigest(ctx context.Context) (map[Urgency]int64, error) {
	return s.repo.CountOpenByUrgency(ctx)
}
