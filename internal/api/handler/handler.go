package handler

import "lectio/backend/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Lesson       *LessonHandler
	Availability *AvailabilityHandler
	Export       *ExportHandler
	Classroom    *ClassroomHandler
}

// NewHandler wires the handler layer.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Lesson:       NewLessonHandler(svc.Lesson),
		Availability: NewAvailabilityHandler(svc.Availability),
		Export:       NewExportHandler(svc.Export),
		Classroom:    NewClassroomHandler(svc.Classroom),
	}
}
