package repository

import (
	"context"

	"gorm.io/gorm"

	"lectio/backend/internal/model"
)

// UserRepository user data access interface. The scheduler only resolves
// trainers by id; account lookup by credentials lives in the identity
// service.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
