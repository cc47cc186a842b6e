package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lectio/backend/internal/service"
	"lectio/backend/pkg/response"
)

// ClassroomHandler classroom reference data HTTP handler.
type ClassroomHandler struct {
	classroomSvc service.ClassroomService
}

// NewClassroomHandler creates a ClassroomHandler.
func NewClassroomHandler(classroomSvc service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomSvc: classroomSvc}
}

// ListClassrooms lists all classrooms, ordered by name.
// GET /api/v1/classrooms
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	rooms, err := h.classroomSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

// GetClassroom returns one classroom.
// GET /api/v1/classrooms/:id
func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	room, err := h.classroomSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassroomNotFound) {
			response.NotFound(c, 18001, "classroom not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, room)
}
