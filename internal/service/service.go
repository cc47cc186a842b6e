package service

import (
	"go.uber.org/zap"

	"lectio/backend/internal/repository"
	"lectio/backend/pkg/redis"
)

// Service aggregates all business interfaces.
type Service struct {
	Lesson       LessonService
	Availability AvailabilityService
	Export       ExportService
	Classroom    ClassroomService
}

// NewService wires the service layer. cache may be nil when Redis is
// not configured.
func NewService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) *Service {
	lessons := NewLessonService(repo, cache, logger)
	return &Service{
		Lesson:       lessons,
		Availability: NewAvailabilityService(repo, logger),
		Export:       NewExportService(repo, lessons, logger),
		Classroom:    NewClassroomService(repo, logger),
	}
}
