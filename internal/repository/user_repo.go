package repository

import (
	"context"

	"gorm.io/gorm"

	"asso-portal/internal/model"
)

// UserRepository is the users data-access interface.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	CountOwnership(ctx context.Context, id string) (orders int64, registrations int64, err error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates the GORM-backed UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepo) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// CountOwnership returns how many orders and event registrations a user
// owns. Deletion is blocked while either count is non-zero.
func (r *userRepo) CountOwnership(ctx context.Context, id string) (int64, int64, error) {
	var orders, registrations int64

	if err := r.db.WithContext(ctx).Model(&model.CafeteriaOrder{}).
		Where("user_id = ?", id).
		Count(&orders).Error; err != nil {
		return 0, 0, err
	}

	if err := r.db.WithContext(ctx).Model(&model.EventRegistration{}).
		Where("user_id = ?", id).
		Count(&registrations).Error; err != nil {
		return 0, 0, err
	}

	return orders, registrations, nil
}
