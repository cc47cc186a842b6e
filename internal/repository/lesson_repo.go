package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lectio/backend/internal/model"
)

// LessonRepository lesson data access interface. All list methods return
// lessons ordered by (date, start_time) ascending with the course module
// chain preloaded, so callers can resolve the effective classroom and the
// enriched view without further queries.
type LessonRepository interface {
	BatchCreate(ctx context.Context, lessons []model.Lesson) error
	GetByID(ctx context.Context, id uint) (*model.Lesson, error)
	List(ctx context.Context, start, end *time.Time, offset, limit int) ([]model.Lesson, int64, error)
	ListOnDate(ctx context.Context, date time.Time, excludeID *uint) ([]model.Lesson, error)
	ListByCourseModule(ctx context.Context, courseModuleID uint, excludeID *uint) ([]model.Lesson, error)
	ListByCourseModules(ctx context.Context, courseModuleIDs []uint, start, end *time.Time) ([]model.Lesson, error)
	ListByEffectiveClassroom(ctx context.Context, classroomID uint, defaultModuleIDs []uint, date, start, end *time.Time) ([]model.Lesson, error)
	Update(ctx context.Context, lesson *model.Lesson) error
	Delete(ctx context.Context, id uint) error
}

type lessonRepo struct {
	db *gorm.DB
}

func NewLessonRepo(db *gorm.DB) LessonRepository {
	return &lessonRepo{db: db}
}

// withDetail preloads everything a schedule view needs.
func (r *lessonRepo) withDetail(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("CourseModule").
		Preload("CourseModule.Module").
		Preload("CourseModule.Course").
		Preload("CourseModule.Trainer").
		Preload("CourseModule.Classroom").
		Preload("Classroom")
}

func (r *lessonRepo) BatchCreate(ctx context.Context, lessons []model.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lessons).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.withDetail(ctx).
		Where("id = ?", id).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) List(ctx context.Context, start, end *time.Time, offset, limit int) ([]model.Lesson, int64, error) {
	var total int64
	counter := r.db.WithContext(ctx).Model(&model.Lesson{})
	query := r.withDetail(ctx)
	if start != nil {
		counter = counter.Where("date >= ?", *start)
		query = query.Where("date >= ?", *start)
	}
	if end != nil {
		counter = counter.Where("date <= ?", *end)
		query = query.Where("date <= ?", *end)
	}
	if err := counter.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lessons []model.Lesson
	err := query.
		Order("date ASC, start_time ASC").
		Offset(offset).Limit(limit).
		Find(&lessons).Error
	return lessons, total, err
}

func (r *lessonRepo) ListOnDate(ctx context.Context, date time.Time, excludeID *uint) ([]model.Lesson, error) {
	query := r.withDetail(ctx).Where("date = ?", date)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	var lessons []model.Lesson
	err := query.Order("start_time ASC").Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) ListByCourseModule(ctx context.Context, courseModuleID uint, excludeID *uint) ([]model.Lesson, error) {
	query := r.db.WithContext(ctx).Where("course_module_id = ?", courseModuleID)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	var lessons []model.Lesson
	err := query.Order("date ASC, start_time ASC").Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) ListByCourseModules(ctx context.Context, courseModuleIDs []uint, start, end *time.Time) ([]model.Lesson, error) {
	if len(courseModuleIDs) == 0 {
		return nil, nil
	}
	query := r.withDetail(ctx).Where("course_module_id IN ?", courseModuleIDs)
	if start != nil {
		query = query.Where("date >= ?", *start)
	}
	if end != nil {
		query = query.Where("date <= ?", *end)
	}
	var lessons []model.Lesson
	err := query.Order("date ASC, start_time ASC").Find(&lessons).Error
	return lessons, err
}

// ListByEffectiveClassroom matches lessons whose own classroom is the one
// asked for, plus lessons without an override whose course module defaults
// to it (defaultModuleIDs).
func (r *lessonRepo) ListByEffectiveClassroom(ctx context.Context, classroomID uint, defaultModuleIDs []uint, date, start, end *time.Time) ([]model.Lesson, error) {
	query := r.withDetail(ctx)
	if len(defaultModuleIDs) > 0 {
		query = query.Where(
			"classroom_id = ? OR (classroom_id IS NULL AND course_module_id IN ?)",
			classroomID, defaultModuleIDs,
		)
	} else {
		query = query.Where("classroom_id = ?", classroomID)
	}
	if date != nil {
		query = query.Where("date = ?", *date)
	}
	if start != nil {
		query = query.Where("date >= ?", *start)
	}
	if end != nil {
		query = query.Where("date <= ?", *end)
	}
	var lessons []model.Lesson
	err := query.Order("date ASC, start_time ASC").Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("id = ?", lesson.ID).
		Updates(map[string]interface{}{
			"course_module_id": lesson.CourseModuleID,
			"classroom_id":     lesson.ClassroomID,
			"date":             lesson.Date,
			"start_time":       lesson.StartTime,
			"end_time":         lesson.EndTime,
			"notes":            lesson.Notes,
		}).Error
}

func (r *lessonRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Lesson{}).Error
}
