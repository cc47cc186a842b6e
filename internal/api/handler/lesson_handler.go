package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lectio/backend/internal/dto"
	"lectio/backend/internal/service"
	"lectio/backend/pkg/response"
)

// LessonHandler lesson scheduling HTTP handler.
type LessonHandler struct {
	lessonSvc service.LessonService
}

// NewLessonHandler creates a LessonHandler.
func NewLessonHandler(lessonSvc service.LessonService) *LessonHandler {
	return &LessonHandler{lessonSvc: lessonSvc}
}

// ListLessons lists lessons with optional date range, paginated.
// GET /api/v1/lessons?start_date=&end_date=&skip=&limit=
func (h *LessonHandler) ListLessons(c *gin.Context) {
	var req dto.LessonListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	lessons, total, err := h.lessonSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, gin.H{"list": lessons, "total": total})
}

// GetLesson returns one lesson enriched for display.
// GET /api/v1/lessons/:id
func (h *LessonHandler) GetLesson(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	lesson, err := h.lessonSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, lesson)
}

// CreateLessons creates one lesson or a weekly recurring batch.
// POST /api/v1/lessons
func (h *LessonHandler) CreateLessons(c *gin.Context) {
	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.lessonSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateLesson applies a partial patch and revalidates.
// PUT /api/v1/lessons/:id
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	lesson, err := h.lessonSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, lesson)
}

// DeleteLesson removes a lesson.
// DELETE /api/v1/lessons/:id
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id, ok := MustGetIDParam(c)
	if !ok {
		return
	}

	if err := h.lessonSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, nil)
}

// ValidateLesson dry-runs conflict detection for a prospective slot.
// POST /api/v1/lessons/validate
func (h *LessonHandler) ValidateLesson(c *gin.Context) {
	var req dto.ValidateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.lessonSvc.Validate(c.Request.Context(), &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, result)
}

// GetHoursInfo returns the hours ledger for a course module.
// GET /api/v1/lessons/hours-info/:course_module_id
func (h *LessonHandler) GetHoursInfo(c *gin.Context) {
	id, ok := mustParseUint(c, c.Param("course_module_id"))
	if !ok {
		return
	}

	info, err := h.lessonSvc.GetHoursInfo(c.Request.Context(), id)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, info)
}

// ListByCourse returns the enriched schedule of a course.
// GET /api/v1/lessons/by-course/:course_id?start_date=&end_date=
func (h *LessonHandler) ListByCourse(c *gin.Context) {
	id, ok := mustParseUint(c, c.Param("course_id"))
	if !ok {
		return
	}
	var rng dto.ListRangeRequest
	if err := c.ShouldBindQuery(&rng); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	lessons, err := h.lessonSvc.ListByCourse(c.Request.Context(), id, &rng)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, gin.H{"list": lessons})
}

// ListByTrainer returns the enriched schedule of a trainer.
// GET /api/v1/lessons/by-trainer/:trainer_id?start_date=&end_date=
func (h *LessonHandler) ListByTrainer(c *gin.Context) {
	id, ok := mustParseUint(c, c.Param("trainer_id"))
	if !ok {
		return
	}
	var rng dto.ListRangeRequest
	if err := c.ShouldBindQuery(&rng); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	lessons, err := h.lessonSvc.ListByTrainer(c.Request.Context(), id, &rng)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, gin.H{"list": lessons})
}

// ListByClassroom returns lessons whose effective classroom matches,
// including module-default resolutions.
// GET /api/v1/lessons/by-classroom/:classroom_id?date=&start_date=&end_date=
func (h *LessonHandler) ListByClassroom(c *gin.Context) {
	id, ok := mustParseUint(c, c.Param("classroom_id"))
	if !ok {
		return
	}
	var req dto.ClassroomScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	lessons, err := h.lessonSvc.ListByClassroom(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, gin.H{"list": lessons})
}

// handleLessonError maps scheduling errors to HTTP responses. Validation
// failures ship the whole conflict list so the client can show every
// problem at once.
func (h *LessonHandler) handleLessonError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var herr *service.HoursExceededError
	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		response.NotFound(c, 15001, "lesson not found")
	case errors.Is(err, service.ErrCourseModuleNotFound):
		response.NotFound(c, 15002, "course module not found")
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 15006, "classroom not found")
	case errors.Is(err, service.ErrInvalidInterval):
		response.BadRequest(c, 15003, "end time must be after start time")
	case errors.As(err, &verr):
		response.ConflictList(c, 15004, "lesson conflicts detected", verr.Conflicts)
	case errors.As(err, &herr):
		response.ConflictList(c, 15005, herr.Error(), []dto.LessonConflict{{
			ErrorType: service.ConflictHours,
			Message:   herr.Error(),
		}})
	default:
		response.InternalError(c)
	}
}
