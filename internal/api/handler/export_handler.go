package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"lectio/backend/internal/dto"
	"lectio/backend/internal/service"
	"lectio/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler schedule export HTTP handler.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCourseSchedule downloads a course schedule as .xlsx.
// GET /api/v1/export/lessons/by-course/:course_id?start_date=&end_date=
func (h *ExportHandler) ExportCourseSchedule(c *gin.Context) {
	id, ok := mustParseUint(c, c.Param("course_id"))
	if !ok {
		return
	}
	var rng dto.ListRangeRequest
	if err := c.ShouldBindQuery(&rng); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.ExportCourseSchedule(c.Request.Context(), id, &rng)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportTrainerCalendar serves a trainer's lessons as an iCalendar feed.
// GET /api/v1/export/lessons/by-trainer/:trainer_id/calendar?start_date=&end_date=
func (h *ExportHandler) ExportTrainerCalendar(c *gin.Context) {
	id, ok := mustParseUint(c, c.Param("trainer_id"))
	if !ok {
		return
	}
	var rng dto.ListRangeRequest
	if err := c.ShouldBindQuery(&rng); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	calendar, filename, err := h.exportSvc.ExportTrainerCalendar(c.Request.Context(), id, &rng)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportCourseNotFound):
		response.NotFound(c, 17001, "course has no modules")
	case errors.Is(err, service.ErrExportTrainerNotFound):
		response.NotFound(c, 17002, "trainer not found")
	case errors.Is(err, service.ErrExportNoLessons):
		response.NotFound(c, 17003, "no lessons in the requested range")
	default:
		response.InternalError(c)
	}
}
