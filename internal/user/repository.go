// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"

	"blood_bank_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateRole(ctx context.Context, id uint, role string) error
	Delete(ctx context.Context, id uint) error
	SearchDonors(ctx context.Context, bloodGroup, province string, limit int) ([]User, error)
	List(ctx context.Context, search string, offset, limit int) ([]User, int64, error)
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, n int) ([]User, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// Create inserts a new user record into the database.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflict.WithMessage(MsgEmailTaken)
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by their email address.
func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage(MsgUserNotFound)
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByID retrieves a user by their ID.
func (r *gormRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).First(&userModel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage(MsgUserNotFound)
		}
		return nil, err
	}
	return &userModel, nil
}

// Update modifies an existing user record in the database.
func (r *gormRepository) Update(ctx context.Context, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflict.WithMessage(MsgEmailTaken)
		}
		return err
	}
	return nil
}

func (r *gormRepository) UpdateRole(ctx context.Context, id uint, role string) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithMessage(MsgUserNotFound)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithMessage(MsgUserNotFound)
	}
	return nil
}

// SearchDonors returns users with an exact blood group and, when given, province.
func (r *gormRepository) SearchDonors(ctx context.Context, bloodGroup, province string, limit int) ([]User, error) {
	var users []User
	query := r.db.WithContext(ctx).Where("blood_group = ?", bloodGroup)
	if province != "" {
		query = query.Where("province = ?", province)
	}
	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&users).Error
	return users, err
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List pages through users, newest first. search is a case-insensitive
// substring match over name, email and phone.
func (r *gormRepository) List(ctx context.Context, search string, offset, limit int) ([]User, int64, error) {
	query := r.db.WithContext(ctx).Model(&User{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(COALESCE(phone, '')) LIKE ? ESCAPE '\'`, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&User{}).Count(&total).Error
	return total, err
}

func (r *gormRepository) Recent(ctx context.Context, n int) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(n).Find(&users).Error
	return users, err
}
