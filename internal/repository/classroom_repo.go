package repository

import (
	"context"

	"gorm.io/gorm"

	"lectio/backend/internal/model"
)

// ClassroomRepository classroom data access interface.
type ClassroomRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Classroom, error)
	List(ctx context.Context) ([]model.Classroom, error)
}

type classroomRepo struct {
	db *gorm.DB
}

func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) GetByID(ctx context.Context, id uint) (*model.Classroom, error) {
	var room model.Classroom
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *classroomRepo) List(ctx context.Context) ([]model.Classroom, error) {
	var rooms []model.Classroom
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rooms).Error
	return rooms, err
}
