package volunteer

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines volunteer persistence.
type Repository interface {
	Create(ctx context.Context, v *Volunteer) error
	List(ctx context.Context, offset, limit int) ([]Volunteer, int64, error)
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM volunteer repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, v *Volunteer) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// List returns volunteers newest first.
func (r *gormRepository) List(ctx context.Context, offset, limit int) ([]Volunteer, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	volunteers := make([]Volunteer, 0, limit)
	err = r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&volunteers).Error
	if err != nil {
		return nil, 0, err
	}
	return volunteers, total, nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Volunteer{}).Count(&total).Error
	return total, err
}
