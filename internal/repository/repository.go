package repository

import "gorm.io/gorm"

// Repository aggregates all data access interfaces.
type Repository struct {
	Lesson              LessonRepository
	CourseModule        CourseModuleRepository
	Classroom           ClassroomRepository
	User                UserRepository
	TrainerAvailability TrainerAvailabilityRepository
}

// NewRepository wires the gorm-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Lesson:              NewLessonRepo(db),
		CourseModule:        NewCourseModuleRepo(db),
		Classroom:           NewClassroomRepo(db),
		User:                NewUserRepo(db),
		TrainerAvailability: NewTrainerAvailabilityRepo(db),
	}
}
