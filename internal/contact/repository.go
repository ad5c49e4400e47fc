package contact

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines contact message persistence.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context, offset, limit int) ([]Message, int64, error)
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) List(ctx context.Context, offset, limit int) ([]Message, int64, error) {
	query := r.db.WithContext(ctx).Model(&Message{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	messages := make([]Message, 0, limit)
	if err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Message{}).Count(&total).Error
	return total, err
}
