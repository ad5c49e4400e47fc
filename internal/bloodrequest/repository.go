// File: internal/bloodrequest/repository.go
package bloodrequest

import (
	"context"
	"errors"

	"blood_bank_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for blood request data operations.
type Repository interface {
	Create(ctx context.Context, req *BloodRequest) error
	FindByID(ctx context.Context, id uint) (*BloodRequest, error)
	List(ctx context.Context, filter Filter, offset, limit int) ([]BloodRequest, int64, error)
	ListByUser(ctx context.Context, userID uint) ([]BloodRequest, error)
	UpdateStatus(ctx context.Context, id uint, status Status) (*BloodRequest, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter Filter) (int64, error)
	CountOpenByUrgency(ctx context.Context) (map[Urgency]int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM blood request repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func applyFilter(query *gorm.DB, filter Filter) *gorm.DB {
	if filter.BloodGroup != "" {
		query = query.Where("blood_group = ?", filter.BloodGroup)
	}
	if filter.Province != "" {
		query = query.Where("province = ?", filter.Province)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Urgency != "" {
		query = query.Where("urgency = ?", filter.Urgency)
	}
	return query
}

func newestFirst(query *gorm.DB) *gorm.DB {
	return query.Order("created_at DESC").Order("id DESC")
}

func (r *gormRepository) Create(ctx context.Context, req *BloodRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*BloodRequest, error) {
	var req BloodRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage(MsgRequestNotFound)
		}
		return nil, err
	}
	return &req, nil
}

// List returns one page of requests matching filter plus the total match count.
func (r *gormRepository) List(ctx context.Context, filter Filter, offset, limit int) ([]BloodRequest, int64, error) {
	query := applyFilter(r.db.WithContext(ctx).Model(&BloodRequest{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]BloodRequest, 0, limit)
	if err := newestFirst(query).Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uint) ([]BloodRequest, error) {
	requests := make([]BloodRequest, 0)
	err := newestFirst(r.db.WithContext(ctx).Where("user_id = ?", userID)).Find(&requests).Error
	return requests, err
}

// UpdateStatus changes only the status column and returns the updated row.
func (r *gormRepository) UpdateStatus(ctx context.Context, id uint, status Status) (*BloodRequest, error) {
	var updated *BloodRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req BloodRequest
		if err := tx.First(&req, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrNotFound.WithMessage(MsgRequestNotFound)
			}
			return err
		}
		if err := tx.Model(&req).Update("status", status).Error; err != nil {
			return err
		}
		req.Status = status
		updated = &req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&BloodRequest{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithMessage(MsgRequestNotFound)
	}
	return nil
}

func (r *gormRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	var total int64
	err := applyFilter(r.db.WithContext(ctx).Model(&BloodRequest{}), filter).Count(&total).Error
	return total, err
}

type urgencyCount struct {
	Urgency Urgency
	Total   int64
}

// CountOpenByUrgency counts Pending and In Progress requests per urgency.
func (r *gormRepository) CountOpenByUrgency(ctx context.Context) (map[Urgency]int64, error) {
	var rows []urgencyCount
	err := r.db.WithContext(ctx).Model(&BloodRequest{}).
		Select("urgency, COUNT(*) AS total").
		Where("status IN ?", []Status{StatusPending, StatusInProgress}).
		Group("urgency").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[Urgency]int64, len(Urgencies))
	for _, u := range Urgencies {
		counts[u] = 0
	}
	for _, row := range rows {
		counts[row.Urgency] = row.Total
	}
	return counts, nil
}
