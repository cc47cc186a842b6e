package repository

import (
	"context"

	"gorm.io/gorm"

	"lectio/backend/internal/model"
)

// CourseModuleRepository course module data access interface.
type CourseModuleRepository interface {
	GetByID(ctx context.Context, id uint) (*model.CourseModule, error)
	ListByCourse(ctx context.Context, courseID uint) ([]model.CourseModule, error)
	ListByTrainer(ctx context.Context, trainerID uint) ([]model.CourseModule, error)
	// ListIDsByDefaultClassroom returns the IDs of course modules whose
	// default classroom is the given one.
	ListIDsByDefaultClassroom(ctx context.Context, classroomID uint) ([]uint, error)
}

type courseModuleRepo struct {
	db *gorm.DB
}

func NewCourseModuleRepo(db *gorm.DB) CourseModuleRepository {
	return &courseModuleRepo{db: db}
}

func (r *courseModuleRepo) withDetail(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Module").
		Preload("Course").
		Preload("Trainer").
		Preload("Classroom")
}

func (r *courseModuleRepo) GetByID(ctx context.Context, id uint) (*model.CourseModule, error) {
	var cm model.CourseModule
	err := r.withDetail(ctx).
		Where("id = ?", id).
		First(&cm).Error
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

func (r *courseModuleRepo) ListByCourse(ctx context.Context, courseID uint) ([]model.CourseModule, error) {
	var cms []model.CourseModule
	err := r.withDetail(ctx).
		Where("course_id = ?", courseID).
		Order("module_order ASC").
		Find(&cms).Error
	return cms, err
}

func (r *courseModuleRepo) ListByTrainer(ctx context.Context, trainerID uint) ([]model.CourseModule, error) {
	var cms []model.CourseModule
	err := r.withDetail(ctx).
		Where("trainer_id = ?", trainerID).
		Order("course_id ASC, module_order ASC").
		Find(&cms).Error
	return cms, err
}

func (r *courseModuleRepo) ListIDsByDefaultClassroom(ctx context.Context, classroomID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.CourseModule{}).
		Where("classroom_id = ?", classroomID).
		Pluck("id", &ids).Error
	return ids, err
}
